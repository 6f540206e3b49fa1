package encode

import (
	"fmt"

	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/command/helper"
)

const argsOnlyFlag = "args-only"

type encodeParams struct {
	signature string
	rawValues []string
	argsOnly  bool

	method *abi.Method
	values []interface{}
}

func (p *encodeParams) validateFlags() error {
	m, err := abi.NewMethod(p.signature)
	if err != nil {
		return err
	}

	if len(p.rawValues) != len(m.Inputs) {
		return fmt.Errorf("%s takes %d arguments, got %d", m.Sig(), len(m.Inputs), len(p.rawValues))
	}

	p.method = m
	p.values = make([]interface{}, len(p.rawValues))

	for i, raw := range p.rawValues {
		v, err := helper.ParseArgument(raw)
		if err != nil {
			return err
		}

		p.values[i] = v
	}

	return nil
}

func (p *encodeParams) getResult() (*EncodeResult, error) {
	values, err := p.method.Inputs.FromNative(p.values)
	if err != nil {
		return nil, err
	}

	var data []byte

	if p.argsOnly {
		data, err = p.method.Inputs.EncodeValues(values)
	} else {
		data, err = p.method.EncodeValues(values)
	}

	if err != nil {
		return nil, err
	}

	return &EncodeResult{
		Signature: p.method.Sig(),
		Selector:  helper.HexString(p.method.ID()),
		Data:      helper.HexString(data),
	}, nil
}
