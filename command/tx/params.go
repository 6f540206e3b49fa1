package tx

import (
	"context"
	"fmt"
	"time"

	"github.com/umbracle/ethgo"
	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/command/calldata"
	"github.com/xgr-network/xgr-abi/command/helper"
)

const fetchTimeout = 30 * time.Second

type txParams struct {
	rawHash string

	hash ethgo.Hash
}

func (p *txParams) validateFlags() error {
	b, err := helper.DecodeHex(p.rawHash)
	if err != nil {
		return err
	}

	if len(b) != len(ethgo.Hash{}) {
		return fmt.Errorf("invalid transaction hash %q", p.rawHash)
	}

	copy(p.hash[:], b)

	return nil
}

func (p *txParams) getResult(ctx context.Context, env *helper.Environment) (*TxResult, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	client, err := env.DialRPC(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	tx, receipt, err := client.TransactionWithReceipt(ctx, p.hash)
	if err != nil {
		return nil, err
	}

	result := &TxResult{
		Hash:   tx.Hash.String(),
		From:   tx.From.String(),
		Status: receipt.Status,
		Input:  helper.HexString(tx.Input),
	}

	if tx.To != nil {
		result.To = tx.To.String()
	}

	// contract creations and plain transfers carry no selector
	if tx.To != nil && len(tx.Input) > 0 {
		call, err := env.Registry.DecodeCall(tx.Input)
		if err != nil {
			result.CallError = err.Error()
		} else {
			result.Call = calldata.NewCallResult(call)
		}
	}

	for _, l := range env.Registry.DecodeLogs(receipt.Logs) {
		result.Logs = append(result.Logs, &LogResult{
			Address:   l.Address.String(),
			Name:      l.Name,
			Signature: l.Signature,
			Params:    logParams(l.Params),
		})
	}

	result.UndecodedLogs = len(receipt.Logs) - len(result.Logs)

	return result, nil
}

func logParams(params []abi.Param) []helper.Param {
	types := make([]*abi.Type, len(params))
	names := make([]string, len(params))
	values := make([]abi.Value, len(params))

	for i, p := range params {
		types[i], names[i], values[i] = p.Type, p.Name, p.Value
	}

	return helper.NewParams(types, names, values)
}
