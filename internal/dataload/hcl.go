package dataload

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// HCL file schema. Record values decode as raw cty values so the records
// bridge can normalize lists, tuples and objects uniformly.

type hclSetBlock struct {
	Name        string    `hcl:"name,label"`
	Description string    `hcl:"description,optional"`
	Domain      []string  `hcl:"domain,optional"`
	Singleton   bool      `hcl:"singleton,optional"`
	Records     cty.Value `hcl:"records,optional"`
}

type hclAliasBlock struct {
	Name string `hcl:"name,label"`
	With string `hcl:"with"`
}

type hclParameterBlock struct {
	Name        string    `hcl:"name,label"`
	Description string    `hcl:"description,optional"`
	Domain      []string  `hcl:"domain,optional"`
	Records     cty.Value `hcl:"records,optional"`
}

type hclScalarBlock struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Value       *float64 `hcl:"value,optional"`
}

type hclVariableBlock struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Kind        string   `hcl:"kind,optional"`
	Domain      []string `hcl:"domain,optional"`
}

type hclModelFile struct {
	Name       string               `hcl:"model,optional"`
	Sets       []*hclSetBlock       `hcl:"set,block"`
	Aliases    []*hclAliasBlock     `hcl:"alias,block"`
	Parameters []*hclParameterBlock `hcl:"parameter,block"`
	Scalars    []*hclScalarBlock    `hcl:"scalar,block"`
	Variables  []*hclVariableBlock  `hcl:"variable,block"`
}

// loadHCL parses one .hcl model-data file into the agnostic model.
func loadHCL(path string, src []byte) (*Model, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}

	var parsed hclModelFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", path, diags)
	}

	return translateHCL(&parsed), nil
}

// translateHCL lowers the decoded HCL structs into the agnostic model.
func translateHCL(parsed *hclModelFile) *Model {
	m := &Model{Name: parsed.Name}
	for _, b := range parsed.Sets {
		decl := SetDecl{
			Name:        b.Name,
			Description: b.Description,
			Domain:      b.Domain,
			Singleton:   b.Singleton,
		}
		// the zero Value and an explicit null both mean "no records";
		// Value is not comparable with == once it wraps a collection
		if !b.Records.IsNull() {
			decl.Records = b.Records
		}
		m.Sets = append(m.Sets, decl)
	}
	for _, b := range parsed.Aliases {
		m.Aliases = append(m.Aliases, AliasDecl{Name: b.Name, With: b.With})
	}
	for _, b := range parsed.Parameters {
		decl := ParameterDecl{
			Name:        b.Name,
			Description: b.Description,
			Domain:      b.Domain,
		}
		if !b.Records.IsNull() {
			decl.Records = b.Records
		}
		m.Parameters = append(m.Parameters, decl)
	}
	for _, b := range parsed.Scalars {
		m.Scalars = append(m.Scalars, ScalarDecl{
			Name:        b.Name,
			Description: b.Description,
			Value:       b.Value,
		})
	}
	for _, b := range parsed.Variables {
		m.Variables = append(m.Variables, VariableDecl{
			Name:        b.Name,
			Description: b.Description,
			Kind:        b.Kind,
			Domain:      b.Domain,
		})
	}
	return m
}
