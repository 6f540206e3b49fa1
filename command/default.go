package command

import "github.com/xgr-network/xgr-abi/config"

const (
	JSONOutputFlag = "json"
	ConfigFlag     = "config"
	LogLevelFlag   = "log-level"
	StrictFlag     = "strict"
	RPCFlag        = "rpc"
)

const DefaultLogLevel = config.DefaultLogLevel
