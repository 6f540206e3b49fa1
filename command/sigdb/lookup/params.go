package lookup

import (
	"fmt"

	"github.com/umbracle/ethgo"
	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/command/helper"
)

const topicLength = len(ethgo.Hash{})

type lookupParams struct {
	rawKey string

	key []byte
}

func (p *lookupParams) validateFlags() error {
	key, err := helper.DecodeHex(p.rawKey)
	if err != nil {
		return err
	}

	if len(key) != abi.SelectorLength && len(key) != topicLength {
		return fmt.Errorf("expected a %d byte selector or a %d byte topic, got %d bytes",
			abi.SelectorLength, topicLength, len(key))
	}

	p.key = key

	return nil
}

func (p *lookupParams) getResult(env *helper.Environment) (*LookupResult, error) {
	dir, err := env.OpenDirectory()
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	result := &LookupResult{Key: helper.HexString(p.key)}

	if len(p.key) == abi.SelectorLength {
		var selector [abi.SelectorLength]byte

		copy(selector[:], p.key)

		result.Kind = "function"
		result.Signatures, err = dir.Lookup(selector)
	} else {
		var topic ethgo.Hash

		copy(topic[:], p.key)

		result.Kind = "event"
		result.Signatures, err = dir.LookupEvent(topic)
	}

	if err != nil {
		return nil, err
	}

	return result, nil
}
