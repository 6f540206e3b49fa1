package encode

import (
	"bytes"
	"fmt"

	"github.com/xgr-network/xgr-abi/command/helper"
)

type EncodeResult struct {
	Signature string `json:"signature"`
	Selector  string `json:"selector"`
	Data      string `json:"data"`
}

func (r *EncodeResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[ENCODED]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Signature|%s", r.Signature),
		fmt.Sprintf("Selector|%s", r.Selector),
		fmt.Sprintf("Data|%s", r.Data),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
