package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/mitchellh/mapstructure"
)

type Config struct {
	Workers    int  // Goroutines evaluating constraints concurrently
	FullReport bool // Keep evaluating after the first failed hard constraint
}

func DefaultConfig() Config {
	return Config{
		Workers:    runtime.NumCPU(),
		FullReport: true,
	}
}

// ConfigFromJson reads a config file; missing keys keep their default values
func ConfigFromJson(file string) (Config, error) {
	config := DefaultConfig()

	bytes, err := os.ReadFile(file)
	if err != nil {
		return config, err
	}
	var configJson map[string]any
	if err := json.Unmarshal(bytes, &configJson); err != nil {
		return config, fmt.Errorf("cannot read config file: %w", err)
	}

	if err := mapstructure.Decode(configJson, &config); err != nil {
		return config, fmt.Errorf("cannot decode config file: %w", err)
	}
	if config.Workers < 1 {
		return config, fmt.Errorf("workers must be positive: %v", config.Workers)
	}
	return config, nil
}
