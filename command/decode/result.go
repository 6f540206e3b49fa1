package decode

import (
	"bytes"

	"github.com/xgr-network/xgr-abi/command/helper"
)

type DecodeResult struct {
	Strict bool           `json:"strict"`
	Params []helper.Param `json:"params"`
}

func (r *DecodeResult) GetOutput() string {
	var buffer bytes.Buffer

	helper.WriteSection(&buffer, "DECODED", helper.FormatParams(r.Params, ""))

	return buffer.String()
}
