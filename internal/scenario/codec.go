package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cis-mcp/internal/simulation"
)

func marshalScenario(cfg simulation.ScenarioConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func unmarshalScenario(data []byte) (simulation.ScenarioConfig, error) {
	var cfg simulation.ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return simulation.ScenarioConfig{}, err
	}
	return cfg, nil
}

// LoadFile reads a scenario from an arbitrary YAML file path, for the one-shot
// CLI commands that work outside the managed scenario directory.
func LoadFile(path string) (simulation.ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return simulation.ScenarioConfig{}, fmt.Errorf("read scenario file: %w", err)
	}
	cfg, err := unmarshalScenario(data)
	if err != nil {
		return simulation.ScenarioConfig{}, fmt.Errorf("parse scenario file %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return simulation.ScenarioConfig{}, err
	}
	return cfg, nil
}
