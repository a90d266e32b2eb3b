package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/msclient/internal/flagx"
	"github.com/dmitrijs2005/msclient/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration so they may be written as "3s" or as
// integer nanoseconds. A nil MaxRetries means "not set", so 0 can still
// disable retries.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	MaxRetries     *uint64        `json:"max_retries"`
	RetryBackoff   timex.Duration `json:"retry_backoff"`
	DataDir        string         `json:"data_dir"`
	DBFile         string         `json:"db_file"`
	StoreName      string         `json:"store_name"`
	LogLevel       string         `json:"log_level"`
	MetricsAddr    string         `json:"metrics_addr"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Only keys present in the file replace current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
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

	setString(&cfg.BaseURL, jc.BaseURL)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.DBFile, jc.DBFile)
	setString(&cfg.StoreName, jc.StoreName)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RetryBackoff.Duration > 0 {
		cfg.RetryBackoff = jc.RetryBackoff.Duration
	}
	if jc.MaxRetries != nil {
		cfg.MaxRetries = *jc.MaxRetries
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
