package main

import (
	"github.com/xgr-network/xgr-abi/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
