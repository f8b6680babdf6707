package config

import "github.com/spf13/pflag"

// RegisterFlags binds the configuration flags to fs and returns the config
// they are parsed into. The result is meaningful only after fs.Parse.
//
// Flags:
//
//	-c/--config      json file path with configs
//	--dotenv         .env file path
//	-d/--dsn         note store DSN
//	-l/--login       account login
//	--crypto-mode    auto|disabled
//	--session        env|memory
//	--log-level      zerolog level
//	--log-file       log file path
func RegisterFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := new(StructuredConfig)

	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")
	fs.StringVar(&cfg.DotEnvPath, "dotenv", "", "dotenv file path")
	fs.StringVarP(&cfg.Storage.DB.DSN, "dsn", "d", "", "Note store DSN (SQLite path or postgres:// URL)")
	fs.StringVarP(&cfg.App.Login, "login", "l", "", "Account login")
	fs.StringVar(&cfg.App.CryptoMode, "crypto-mode", "", "Encryption mode: auto or disabled")
	fs.StringVar(&cfg.Session.Backend, "session", "", "Session key cache: env or memory")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Log file path")

	return cfg
}
