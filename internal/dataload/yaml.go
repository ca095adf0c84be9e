package dataload

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// YAML file schema, the same declarations as the HCL flavor but in list form.

type yamlSetDecl struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Domain      []string `yaml:"domain"`
	Singleton   bool     `yaml:"singleton"`
	Records     any      `yaml:"records"`
}

type yamlAliasDecl struct {
	Name string `yaml:"name"`
	With string `yaml:"with"`
}

type yamlParameterDecl struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Domain      []string `yaml:"domain"`
	Records     any      `yaml:"records"`
}

type yamlScalarDecl struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Value       *float64 `yaml:"value"`
}

type yamlVariableDecl struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Kind        string   `yaml:"kind"`
	Domain      []string `yaml:"domain"`
}

type yamlModelFile struct {
	Model      string              `yaml:"model"`
	Sets       []yamlSetDecl       `yaml:"sets"`
	Aliases    []yamlAliasDecl     `yaml:"aliases"`
	Parameters []yamlParameterDecl `yaml:"parameters"`
	Scalars    []yamlScalarDecl    `yaml:"scalars"`
	Variables  []yamlVariableDecl  `yaml:"variables"`
}

// loadYAML parses one .yaml model-data file into the agnostic model.
func loadYAML(path string, src []byte) (*Model, error) {
	var parsed yamlModelFile
	if err := yaml.Unmarshal(src, &parsed); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	m := &Model{Name: parsed.Model}
	for _, d := range parsed.Sets {
		m.Sets = append(m.Sets, SetDecl(d))
	}
	for _, d := range parsed.Aliases {
		m.Aliases = append(m.Aliases, AliasDecl(d))
	}
	for _, d := range parsed.Parameters {
		m.Parameters = append(m.Parameters, ParameterDecl(d))
	}
	for _, d := range parsed.Scalars {
		m.Scalars = append(m.Scalars, ScalarDecl(d))
	}
	for _, d := range parsed.Variables {
		m.Variables = append(m.Variables, VariableDecl(d))
	}
	return m, nil
}
