package calldata

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xgr-network/xgr-abi/command/helper"
)

const (
	sourceRegistry  = "registry"
	sourceDirectory = "directory"
)

type CallResult struct {
	Name      string         `json:"name,omitempty"`
	Signature string         `json:"signature"`
	Params    []helper.Param `json:"params"`
	Nested    []*CallResult  `json:"nested,omitempty"`
}

type CalldataResult struct {
	Source     string        `json:"source"`
	Call       *CallResult   `json:"call,omitempty"`
	Candidates []*CallResult `json:"candidates,omitempty"`
}

func (r *CalldataResult) GetOutput() string {
	var buffer bytes.Buffer

	if r.Call != nil {
		WriteCall(&buffer, r.Call, 0)

		return buffer.String()
	}

	buffer.WriteString(fmt.Sprintf("\n[CANDIDATES]\n%d signatures decode the input\n", len(r.Candidates)))

	for _, c := range r.Candidates {
		WriteCall(&buffer, c, 0)
	}

	return buffer.String()
}

// WriteCall renders call and its nested calls, indented by depth
func WriteCall(buffer *bytes.Buffer, call *CallResult, depth int) {
	indent := strings.Repeat("  ", depth)

	buffer.WriteString(fmt.Sprintf("\n%s[%s]\n", indent, call.Signature))

	if len(call.Params) > 0 {
		buffer.WriteString(helper.FormatParams(call.Params, indent))
		buffer.WriteString("\n")
	}

	for _, nested := range call.Nested {
		WriteCall(buffer, nested, depth+1)
	}
}
