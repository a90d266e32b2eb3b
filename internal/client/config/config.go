package config

import "time"

// DefaultBaseURL is the staging API origin.
const DefaultBaseURL = "https://modelsocietyapi-stage-a3dcfsb2hgf9fkd0.eastus-01.azurewebsites.net"

// Config holds runtime settings for the Model Society CLI.
//
// Fields:
//   - BaseURL: API origin every endpoint path is appended to.
//   - RequestTimeout: upper bound for a single HTTP attempt.
//   - MaxRetries, RetryBackoff: retry policy for idempotent requests.
//   - DataDir, DBFile: where the session database lives ("~" is expanded).
//   - StoreName: metadata key of the full session blob.
//   - LogLevel: debug, info, warn or error.
//   - MetricsAddr: listen address for /metrics; empty disables it.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxRetries     uint64
	RetryBackoff   time.Duration
	DataDir        string
	DBFile         string
	StoreName      string
	LogLevel       string
	MetricsAddr    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.RequestTimeout = 10 * time.Second
	c.MaxRetries = 2
	c.RetryBackoff = 200 * time.Millisecond
	c.DataDir = ".msclient"
	c.DBFile = "session.db"
	c.StoreName = "session"
	c.LogLevel = "info"
	c.MetricsAddr = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
