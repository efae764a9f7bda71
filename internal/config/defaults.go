// Package config holds the defaults shared by the CLI and the UI server.
package config

import "time"

// Default configuration values.
const (
	DefaultSiteName       = "Admin"
	DefaultUsernameField  = "username"
	DefaultPort           = 8765
	DefaultLanguage       = "en"
	DefaultBackendURL     = "http://localhost:8080/api"
	DefaultBackendTimeout = 10 * time.Second
	DefaultRowsDriver     = "sqlite"
	DefaultRowsLimit      = 200
	DefaultEnv            = "dev"
	DefaultOutput         = "auto"
)

// ConfigFileNames are the file names searched for, in order.
var ConfigFileNames = []string{"crudshell.yaml", "crudshell.yml"}
