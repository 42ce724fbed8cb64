// Package config pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a JSON configuration file into dst.
func LoadFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	return nil
}

// ValidateConfig runs Validate when cfg implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// LoadAndValidate loads a configuration file and applies its validation,
// which is where defaults get filled in.
func LoadAndValidate(path string, cfg interface{}) error {
	if err := LoadFile(path, cfg); err != nil {
		return err
	}

	return ValidateConfig(cfg)
}
