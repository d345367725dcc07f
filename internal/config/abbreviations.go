package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AbbreviationsConfig is the layout of the optional abbreviations YAML file:
//
//	abbreviations:
//	  "Journal of Imaging Science": JIS
//	  "IEEE Transactions on Medical Imaging": TMI
type AbbreviationsConfig struct {
	Abbreviations map[string]string `yaml:"abbreviations"`
}

// LoadAbbreviations reads journal name to abbreviation overrides from a YAML file.
// The path parameter comes from the operator's environment, not from feed content.
func LoadAbbreviations(path string) (map[string]string, error) {
	// #nosec G304 -- path is provided by trusted source (environment), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read abbreviations file: %w", err)
	}

	var cfg AbbreviationsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse abbreviations file: %w", err)
	}

	if err := validateAbbreviations(cfg.Abbreviations); err != nil {
		return nil, fmt.Errorf("abbreviations validation failed: %w", err)
	}

	return cfg.Abbreviations, nil
}

func validateAbbreviations(abbrevs map[string]string) error {
	for name, code := range abbrevs {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("journal name cannot be blank")
		}
		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("abbreviation for %q cannot be blank", name)
		}
	}
	return nil
}
