package decode

import (
	"strings"

	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/command/helper"
)

type decodeParams struct {
	typeList string
	rawData  string
	strict   bool

	types []*abi.Type
	data  []byte
}

func (p *decodeParams) validateFlags() error {
	types, err := parseTypeList(strings.TrimSpace(p.typeList))
	if err != nil {
		return err
	}

	data, err := helper.DecodeHex(p.rawData)
	if err != nil {
		return err
	}

	p.types, p.data = types, data

	return nil
}

// parseTypeList accepts "address,uint256" as well as "(address,uint256)"
func parseTypeList(list string) ([]*abi.Type, error) {
	if strings.HasPrefix(list, "(") && strings.HasSuffix(list, ")") {
		if t, err := abi.Parse(list); err == nil && t.Kind() == abi.TupleTy {
			types := make([]*abi.Type, t.NumFields())
			for i := range types {
				types[i] = t.Field(i).Type
			}

			return types, nil
		}
	}

	return abi.ParseTypes(list)
}

func (p *decodeParams) getResult() (*DecodeResult, error) {
	values, err := abi.DecodeWithOptions(p.data, p.types, abi.DecodeOptions{Strict: p.strict})
	if err != nil {
		return nil, err
	}

	return &DecodeResult{
		Strict: p.strict,
		Params: helper.NewParams(p.types, nil, values),
	}, nil
}
