package lookup

import (
	"bytes"
	"fmt"

	"github.com/xgr-network/xgr-abi/command/helper"
)

type LookupResult struct {
	Key        string   `json:"key"`
	Kind       string   `json:"kind"`
	Signatures []string `json:"signatures"`
}

func (r *LookupResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString(fmt.Sprintf("\n[%s SIGNATURES]\n", r.Key))

	if len(r.Signatures) == 0 {
		buffer.WriteString("No signatures found\n")

		return buffer.String()
	}

	buffer.WriteString(helper.FormatList(r.Signatures))
	buffer.WriteString("\n")

	return buffer.String()
}
