package tx

import (
	"bytes"
	"fmt"

	"github.com/xgr-network/xgr-abi/command/calldata"
	"github.com/xgr-network/xgr-abi/command/helper"
)

type LogResult struct {
	Address   string         `json:"address"`
	Name      string         `json:"name"`
	Signature string         `json:"signature"`
	Params    []helper.Param `json:"params"`
}

type TxResult struct {
	Hash          string               `json:"hash"`
	From          string               `json:"from"`
	To            string               `json:"to,omitempty"`
	Status        uint64               `json:"status"`
	Input         string               `json:"input"`
	Call          *calldata.CallResult `json:"call,omitempty"`
	CallError     string               `json:"call_error,omitempty"`
	Logs          []*LogResult         `json:"logs"`
	UndecodedLogs int                  `json:"undecoded_logs"`
}

func (r *TxResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[TRANSACTION]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Hash|%s", r.Hash),
		fmt.Sprintf("From|%s", r.From),
		fmt.Sprintf("To|%s", r.To),
		fmt.Sprintf("Status|%d", r.Status),
		fmt.Sprintf("Undecoded logs|%d", r.UndecodedLogs),
	}))
	buffer.WriteString("\n")

	switch {
	case r.Call != nil:
		calldata.WriteCall(&buffer, r.Call, 0)
	case r.CallError != "":
		helper.WriteSection(&buffer, "INPUT", r.Input+"\n"+r.CallError)
	}

	for _, l := range r.Logs {
		helper.WriteSection(&buffer, l.Address+" "+l.Signature, helper.FormatParams(l.Params, ""))
	}

	return buffer.String()
}
