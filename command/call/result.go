package call

import (
	"bytes"
	"fmt"

	"github.com/xgr-network/xgr-abi/command/helper"
)

type CallResult struct {
	To        string         `json:"to"`
	Signature string         `json:"signature"`
	Input     string         `json:"input"`
	Outputs   []helper.Param `json:"outputs"`
}

func (r *CallResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[CALL]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("To|%s", r.To),
		fmt.Sprintf("Signature|%s", r.Signature),
		fmt.Sprintf("Input|%s", r.Input),
	}))
	buffer.WriteString("\n")

	if len(r.Outputs) > 0 {
		helper.WriteSection(&buffer, "OUTPUTS", helper.FormatParams(r.Outputs, ""))
	}

	return buffer.String()
}
