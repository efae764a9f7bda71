package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	seen := make(map[string]struct{}, len(c.Models))
	for i, m := range c.Models {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("models[%d]: name is required", i))
			continue
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("models[%d]: duplicate model name %q", i, name))
		}
		seen[name] = struct{}{}
	}

	if c.Backend != nil && c.Backend.BaseURL != "" {
		u, err := url.Parse(c.Backend.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("backend.base_url must be an absolute URL, got %q", c.Backend.BaseURL))
		}
	}

	if c.UI != nil && (c.UI.Port < 0 || c.UI.Port > 65535) {
		errs = append(errs, fmt.Errorf("ui.port out of range: %d", c.UI.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration in crudshell.yaml: %w", errors.Join(errs...))
	}
	return nil
}
