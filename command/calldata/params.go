package calldata

import (
	"errors"
	"fmt"

	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/command/helper"
)

const noDirectoryFlag = "no-directory"

type calldataParams struct {
	rawData     string
	noDirectory bool

	data []byte
}

func (p *calldataParams) validateFlags() error {
	data, err := helper.DecodeHex(p.rawData)
	if err != nil {
		return err
	}

	if len(data) < abi.SelectorLength {
		return fmt.Errorf("%w: calldata has %d bytes", abi.ErrBufferTooShort, len(data))
	}

	p.data = data

	return nil
}

func (p *calldataParams) getResult(env *helper.Environment) (*CalldataResult, error) {
	call, err := env.Registry.DecodeCall(p.data)
	if err == nil {
		return &CalldataResult{Source: sourceRegistry, Call: NewCallResult(call)}, nil
	}

	if !errors.Is(err, abi.ErrUnknownSelector) || p.noDirectory {
		return nil, err
	}

	env.Logger.Debug("selector not in registry, trying the directory", "err", err)

	dir, err := env.OpenDirectory()
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	matches, err := dir.Resolve(p.data)
	if err != nil {
		return nil, err
	}

	result := &CalldataResult{Source: sourceDirectory}

	for _, m := range matches {
		result.Candidates = append(result.Candidates, &CallResult{
			Signature: m.Signature,
			Params:    helper.NewParams(m.Types, nil, m.Values),
		})
	}

	return result, nil
}

// NewCallResult converts a registry decode into its rendered form
func NewCallResult(call *abi.DecodedCall) *CallResult {
	types := make([]*abi.Type, len(call.Params))
	names := make([]string, len(call.Params))
	values := make([]abi.Value, len(call.Params))

	for i, p := range call.Params {
		types[i], names[i], values[i] = p.Type, p.Name, p.Value
	}

	res := &CallResult{
		Name:      call.Name,
		Signature: call.Signature,
		Params:    helper.NewParams(types, names, values),
	}

	for _, nested := range call.Nested {
		res.Nested = append(res.Nested, NewCallResult(nested))
	}

	return res
}
