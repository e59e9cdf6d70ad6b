package config

import (
	"strings"

	"github.com/inful/supercollider/internal/foundation/errors"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if len(cfg.Sources.All()) == 0 {
		return errors.ValidationError("at least one source root is required").
			WithContext("field", "sources").
			Build()
	}
	for _, root := range cfg.Sources.All() {
		if strings.TrimSpace(root) == "" {
			return errors.ValidationError("source root must not be empty").
				WithContext("field", "sources").
				Build()
		}
	}
	if strings.TrimSpace(cfg.Dest) == "" {
		return errors.ValidationError("dest must not be empty").
			WithContext("field", "dest").
			Build()
	}
	if cfg.Concurrency < 0 {
		return errors.ValidationError("concurrency must not be negative").
			WithContext("field", "concurrency").
			WithContext("value", cfg.Concurrency).
			Build()
	}

	seen := make(map[string]struct{}, len(cfg.Adapters))
	for _, name := range cfg.Adapters {
		if strings.TrimSpace(name) == "" {
			return errors.ValidationError("adapter name must not be empty").
				WithContext("field", "adapters").
				Build()
		}
		if _, dup := seen[name]; dup {
			return errors.ValidationError("adapter listed more than once").
				WithContext("field", "adapters").
				WithContext("adapter", name).
				Build()
		}
		seen[name] = struct{}{}
	}
	return nil
}
