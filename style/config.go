package style

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a style configuration from a YAML file.
//
// The loader is strict: unknown fields are rejected rather than silently
// ignored, so a typo in a style file cannot quietly change the output.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read style config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse style config %q: %w", path, err)
	}
	return cfg, nil
}
