package config

import "time"

// Config holds runtime settings for the notes CLI.
type Config struct {
	// ServerBaseURL is the root of the notes REST API, without the /api suffix.
	ServerBaseURL string
	// CallbackAddr is where the local redirect listener binds.
	CallbackAddr string
	// DatabasePath is the SQLite file holding the session token.
	DatabasePath   string
	RequestTimeout time.Duration
	Verbose        bool
	// Ephemeral keeps the token in memory only.
	Ephemeral bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.CallbackAddr = "127.0.0.1:3000"
	c.DatabasePath = "notes.db"
	c.RequestTimeout = 10 * time.Second
	c.Verbose = false
	c.Ephemeral = false
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then command-line flags. Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
