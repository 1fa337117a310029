// Package config loads the viewer's YAML configuration. Unset fields
// fall back to defaults; set fields are validated before use so a bad
// config fails at startup instead of mid-animation.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// End-of-route policy names accepted in config.
const (
	PolicyLoop = "loop"
	PolicyHalt = "halt"
)

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

type AnimationConfig struct {
	// Speed is the marker speed in solution units per second.
	Speed float64 `yaml:"speed" validate:"gt=0"`
	// FPS is the frame loop tick rate.
	FPS int `yaml:"fps" validate:"gt=0,lte=240"`
	// EndOfRoute selects what a vehicle does at its final stop.
	EndOfRoute string `yaml:"endOfRoute" validate:"oneof=loop halt"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Animation AnimationConfig `yaml:"animation"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Animation: AnimationConfig{
			Speed:      2.5,
			FPS:        30,
			EndOfRoute: PolicyLoop,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults
// untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: invalid %q: %w", path, err)
	}
	return cfg, nil
}
