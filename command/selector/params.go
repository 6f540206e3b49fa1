package selector

import (
	"errors"
	"strings"

	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/command/helper"
)

const eventFlag = "event"

var errEmptySignature = errors.New("signature is empty")

type selectorParams struct {
	signature string
	event     bool
}

func (p *selectorParams) validateFlags() error {
	p.signature = strings.TrimSpace(p.signature)
	if p.signature == "" {
		return errEmptySignature
	}

	if strings.HasPrefix(p.signature, "event ") {
		p.event = true
		p.signature = strings.TrimPrefix(p.signature, "event ")
	}

	p.signature = strings.TrimPrefix(p.signature, "function ")

	return nil
}

func (p *selectorParams) getResult() (*SelectorResult, error) {
	if p.event {
		e, err := abi.NewEvent(p.signature)
		if err != nil {
			return nil, err
		}

		topic := e.ID()

		return &SelectorResult{
			Signature: e.Sig(),
			Kind:      "event",
			Hash:      topic.String(),
		}, nil
	}

	m, err := abi.NewMethod(p.signature)
	if err != nil {
		return nil, err
	}

	return &SelectorResult{
		Signature: m.Sig(),
		Kind:      "function",
		Selector:  helper.HexString(m.ID()),
		Hash:      helper.HexString(abi.Keccak256([]byte(m.Sig()))),
	}, nil
}
