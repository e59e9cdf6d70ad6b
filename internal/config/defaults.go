package config

import "runtime"

const (
	DefaultDest  = "./site"
	DefaultTitle = "Style Guide"
)

// DefaultAdapters are the built-in adapters enabled when none are listed.
var DefaultAdapters = []string{"json", "html"}

// ApplyDefaults fills unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Dest == "" {
		cfg.Dest = DefaultDest
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if len(cfg.Adapters) == 0 {
		cfg.Adapters = append([]string(nil), DefaultAdapters...)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}
}
