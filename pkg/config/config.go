package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const envFileVar = "IQUOTE_ENV_FILE"

// MustNew loads a config struct of type T from the environment and panics on
// failure. Use at process start only.
func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// New loads a config struct of type T from the environment. When IQUOTE_ENV_FILE
// points at a file (or a .env exists in the working directory), its settings are
// exported into the environment first.
func New[T any](prefix string) (*T, error) {
	if filepath := strings.TrimSpace(os.Getenv(envFileVar)); filepath != "" {
		if err := exportEnvironment(filepath); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", filepath, err)
		}
	} else if err := exportEnvironmentIfExists(".env"); err != nil {
		return nil, fmt.Errorf("failed to load default env file: %w", err)
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}

	return &conf, nil
}

func exportEnvironmentIfExists(filepath string) error {
	info, err := os.Stat(filepath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportEnvironment(filepath)
}

func exportEnvironment(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for k, val := range v.AllSettings() {
		if err := os.Setenv(strings.ToUpper(k), fmt.Sprint(val)); err != nil {
			return err
		}
	}

	return nil
}
