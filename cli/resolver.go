package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config.yaml")
//
// Only the mapping stored under the given name is used. Its keys are flag
// names, with hyphens or underscores:
//
//	config:
//	  log-level: debug
//	  log_format: text
//	  include: [./lib, /usr/share/nana]
//	  max-depth: 64
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=text
//	--include=./lib,/usr/share/nana
//	--max-depth=64
//
// Command-line flags override config file values. A file that does not
// decode, or has no mapping under name, configures nothing.
func resolve(
	ctx context.Context,
	name string,
) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		data, err := io.ReadAll(r)
		if err != nil {
			return config{}, nil
		}

		err = yaml.UnmarshalContext(ctx, data, &doc)
		if err != nil {
			return config{}, nil
		}

		section, ok := doc[name].(map[string]any)
		if !ok {
			return config{}, nil
		}

		return makeConfig(section), nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// makeConfig converts decoded YAML values to the forms Kong parses.
func makeConfig(section map[string]any) config {
	c := make(config, len(section))

	for key, val := range section {
		c[key] = native(val)
	}

	return c
}

// native converts numbers to strings, which Kong requires for parsing, and
// recurses into sequences.
func native(v any) any {
	switch v := v.(type) {
	case int, int64, uint64, float64:
		return fmt.Sprint(v)

	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = native(e)
		}

		return out

	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already decoded successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but config keys
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	// Look up the value in our config
	if value, ok := r[name]; ok {
		return value, nil
	}

	// Try underscore variant
	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
