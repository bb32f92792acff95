package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/flixvault/flixvault/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts are
// given in seconds; values are copied into the runtime Config afterwards.
type JsonConfig struct {
	DatabaseDSN    string `json:"database_dsn"`
	RemoteTimeoutS int    `json:"remote_timeout_s"`
	TokenSecret    string `json:"token_secret"`
}

// parseJson overlays Config with values loaded from a JSON file named via
// the -c or -config flags. When no file is named, nothing happens. Read or
// unmarshal errors panic; intended usage is defaults -> parseJson ->
// parseFlags, where later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RemoteTimeoutS > 0 {
		cfg.RemoteTimeout = time.Duration(jc.RemoteTimeoutS) * time.Second
	}
	if jc.TokenSecret != "" {
		cfg.TokenSecret = jc.TokenSecret
	}
}
