package call

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/umbracle/ethgo"
	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/command/helper"
	"github.com/xgr-network/xgr-abi/internal/ethrpc"
)

const callTimeout = 30 * time.Second

type callParams struct {
	rawTo     string
	signature string
	rawValues []string

	to     ethgo.Address
	method *abi.Method
	values []interface{}
}

func (p *callParams) validateFlags() error {
	to, err := helper.DecodeHex(p.rawTo)
	if err != nil {
		return err
	}

	if len(to) != len(ethgo.Address{}) {
		return fmt.Errorf("invalid contract address %q", p.rawTo)
	}

	copy(p.to[:], to)

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
		if p.values[i], err = helper.ParseArgument(raw); err != nil {
			return err
		}
	}

	return nil
}

func (p *callParams) getResult(ctx context.Context, env *helper.Environment) (*CallResult, error) {
	input, err := p.method.Encode(p.values)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	client, err := env.DialRPC(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	output, err := client.Call(ctx, p.to, input)
	if err != nil {
		var revert *ethrpc.RevertError
		if !errors.As(err, &revert) || len(revert.Data) == 0 {
			return nil, err
		}

		reason, decodeErr := env.DecodeRevert(revert.Data)
		if decodeErr != nil {
			return nil, err
		}

		return nil, fmt.Errorf("%s reverted: %s", p.method.Sig(), reason)
	}

	values, err := p.method.Outputs.DecodeValuesWithOptions(output, env.DecodeOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to decode the output of %s: %w", p.method.Sig(), err)
	}

	return &CallResult{
		To:        p.to.String(),
		Signature: p.method.Sig(),
		Input:     helper.HexString(input),
		Outputs:   helper.NewParams(p.method.Outputs.Types(), p.method.Outputs.Names(), values),
	}, nil
}
