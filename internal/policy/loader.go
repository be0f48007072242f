package policy

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the policy file looked up by the CLI when --policy is not set.
const DefaultPath = "./plr.yaml"

// Load reads and parses the policy file at path. Fields absent from the file
// keep their Default() values, so a partial policy overriding only the
// scoring baseline is valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Version != 1 {
		return nil, errors.New("unsupported policy version")
	}

	return cfg, nil
}

// LoadOrDefault returns Load(path) when the file exists, and Default() when
// it does not. Any other read or parse failure is returned as an error.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
