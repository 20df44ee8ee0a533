package taxparams

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadFromFile reads a YAML parameter table and validates it
func LoadFromFile(path string) (*domain.TaxParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax parameter file: %w", err)
	}
	params, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return params, nil
}

// Parse decodes a YAML parameter table and validates it
func Parse(data []byte) (*domain.TaxParameters, error) {
	var params domain.TaxParameters
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse tax parameter YAML: %w", err)
	}
	if err := Validate(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// Marshal renders a table in the format Parse accepts
func Marshal(params *domain.TaxParameters) ([]byte, error) {
	return yaml.Marshal(params)
}
