package importer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xgr-network/xgr-abi/command/helper"
)

type ImportResult struct {
	Files    []string `json:"files"`
	Added    int      `json:"added"`
	Rejected int      `json:"rejected"`
}

func (r *ImportResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[SIGNATURES IMPORTED]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Files|%s", strings.Join(r.Files, ", ")),
		fmt.Sprintf("Added|%d", r.Added),
		fmt.Sprintf("Rejected|%d", r.Rejected),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
