package revert

import (
	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/command/helper"
)

type revertParams struct {
	rawData string

	data []byte
}

func (p *revertParams) validateFlags() error {
	data, err := helper.DecodeHex(p.rawData)
	if err != nil {
		return err
	}

	p.data = data

	return nil
}

func (p *revertParams) getResult(env *helper.Environment) (*RevertResult, error) {
	if label, custom := env.FindError(p.data); custom != nil {
		args, err := custom.Decode(p.data)
		if err != nil {
			return nil, err
		}

		return &RevertResult{
			Kind:      kindCustom,
			Source:    label,
			Signature: custom.Sig(),
			Args:      args,
		}, nil
	}

	r, err := abi.UnpackRevert(p.data)
	if err != nil {
		return nil, err
	}

	result := &RevertResult{Kind: kindError, Message: r.Message}

	if r.Panic {
		result.Kind = kindPanic
		result.Code = r.Code.String()
	}

	return result, nil
}
