package config

import "time"

var AppVersion = "DEVELOPMENT"

const (
	AppName           = "fpstune"
	HistoryDbFile     = "history.db"
	LogFile           = "core.log"
	PidFile           = "core.pid"
	CfgFile           = "config.toml"
	BackupsDir        = "backups"
	APIRequestTimeout = 30 * time.Second
)
