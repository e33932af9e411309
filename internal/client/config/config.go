package config

// Store drivers understood by storage.Open.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds runtime settings shared by the textdesk REPL and web form.
//
// Fields:
//   - EndpointBaseURL: scheme://host:port the /generate, /translate and
//     /resize_image endpoints are served from.
//   - EndpointSecret: HMAC secret for outbound bearer tokens; empty disables them.
//   - StoreDriver / StoreDSN: durable draft store backend and its DSN (file path
//     for sqlite, connection string for postgres, host:port for redis).
//   - WebAddr: listen address of the browser form.
//   - ExportDir: local directory resized images are saved to.
//   - S3*: optional S3-compatible bucket used instead of ExportDir.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointBaseURL string
	EndpointSecret  string
	StoreDriver     string
	StoreDSN        string
	WebAddr         string
	ExportDir       string
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3User          string
	S3Password      string
	LogLevel        string
}

// LoadDefaults populates c with sensible local defaults.
func (c *Config) LoadDefaults() {
	c.EndpointBaseURL = "http://127.0.0.1:5000"
	c.StoreDriver = StoreSQLite
	c.StoreDSN = "textdesk.db"
	c.WebAddr = "127.0.0.1:8080"
	c.ExportDir = "exports"
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
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
