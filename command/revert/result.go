package revert

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xgr-network/xgr-abi/command/helper"
)

const (
	kindError  = "error"
	kindPanic  = "panic"
	kindCustom = "custom"
)

type RevertResult struct {
	Kind      string                 `json:"kind"`
	Message   string                 `json:"message,omitempty"`
	Code      string                 `json:"code,omitempty"`
	Source    string                 `json:"source,omitempty"`
	Signature string                 `json:"signature,omitempty"`
	Args      map[string]interface{} `json:"args,omitempty"`
}

func (r *RevertResult) GetOutput() string {
	var buffer bytes.Buffer

	vals := []string{fmt.Sprintf("Kind|%s", r.Kind)}

	switch r.Kind {
	case kindCustom:
		vals = append(vals,
			fmt.Sprintf("ABI|%s", r.Source),
			fmt.Sprintf("Error|%s", r.Signature),
		)

		names := make([]string, 0, len(r.Args))
		for name := range r.Args {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			vals = append(vals, fmt.Sprintf("%s|%v", name, r.Args[name]))
		}
	case kindPanic:
		vals = append(vals,
			fmt.Sprintf("Code|%s", r.Code),
			fmt.Sprintf("Reason|%s", r.Message),
		)
	default:
		vals = append(vals, fmt.Sprintf("Message|%s", r.Message))
	}

	buffer.WriteString("\n[REVERT]\n")
	buffer.WriteString(helper.FormatKV(vals))
	buffer.WriteString("\n")

	return buffer.String()
}
