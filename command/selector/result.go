package selector

import (
	"bytes"
	"fmt"

	"github.com/xgr-network/xgr-abi/command/helper"
)

type SelectorResult struct {
	Signature string `json:"signature"`
	Kind      string `json:"kind"`
	Selector  string `json:"selector,omitempty"`
	Hash      string `json:"hash"`
}

func (r *SelectorResult) GetOutput() string {
	var buffer bytes.Buffer

	vals := []string{
		fmt.Sprintf("Signature|%s", r.Signature),
		fmt.Sprintf("Kind|%s", r.Kind),
	}

	if r.Selector != "" {
		vals = append(vals, fmt.Sprintf("Selector|%s", r.Selector))
	}

	vals = append(vals, fmt.Sprintf("Hash|%s", r.Hash))

	buffer.WriteString("\n[SELECTOR]\n")
	buffer.WriteString(helper.FormatKV(vals))
	buffer.WriteString("\n")

	return buffer.String()
}
