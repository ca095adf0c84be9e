// Package dataload reads declarative model-data files (HCL or YAML) and
// populates an algebra.Container from them. Each format decodes into the same
// format-agnostic Model, so the populate step is shared.
package dataload
