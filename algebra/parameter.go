package algebra

import (
	"strconv"
	"strings"

	"github.com/vk/optmodel/internal/sentinel"
)

// ParameterRecord is one labeled numeric datum: a domain-label tuple and its
// value.
type ParameterRecord struct {
	Key   []string
	Value float64
}

// Parameter is a data symbol: labeled numeric records over a declared
// domain. A Parameter with an empty domain is a scalar.
type Parameter struct {
	symbolBase
	operable
	forwarding bool
	records    []ParameterRecord
}

// NewParameter declares a parameter. Redeclaration follows the same rule as
// sets: domain and forwarding must be unchanged, description and records may
// be overwritten, anything else is a ValidationError and leaves the original
// untouched.
func NewParameter(c *Container, name string, opts ...Option) (*Parameter, error) {
	cfg := buildConfig(opts)
	if cfg.singleton {
		return nil, validationf("parameter %q: singleton applies only to sets", name)
	}

	if existing, ok := c.Get(name); ok {
		prior, isParam := existing.(*Parameter)
		if !isParam {
			return nil, validationf("cannot redeclare %s %q as a Parameter", existing.Kind(), name)
		}
		if !sameDomain(prior.domain, cfg.domain) {
			return nil, validationf("redeclaration of parameter %q changes its domain", name)
		}
		if cfg.forwarding != prior.forwarding {
			return nil, validationf("redeclaration of parameter %q changes domain forwarding", name)
		}
		if cfg.hasDescription {
			prior.description = cfg.description
		}
		if cfg.hasRecords {
			if err := prior.SetRecords(cfg.records); err != nil {
				return nil, err
			}
		}
		return prior, nil
	}

	if err := c.validateOwnership(name, cfg.domain); err != nil {
		return nil, err
	}

	p := &Parameter{
		symbolBase: symbolBase{
			name:        name,
			description: cfg.description,
			domain:      cfg.domain,
			cont:        c,
		},
		forwarding: cfg.forwarding,
	}
	p.bind(p)
	if err := c.register(p); err != nil {
		return nil, err
	}
	if cfg.hasRecords {
		if err := p.SetRecords(cfg.records); err != nil {
			_ = c.Remove(name)
			return nil, err
		}
	}
	return p, nil
}

// Kind returns KindParameter.
func (p *Parameter) Kind() Kind { return KindParameter }

// DomainForwarding reports whether records may grow the domain sets.
func (p *Parameter) DomainForwarding() bool { return p.forwarding }

// SetRecords replaces the parameter's records. A scalar accepts a single
// number; dimensioned parameters accept label-tuple/value rows.
func (p *Parameter) SetRecords(data any) error {
	records, err := toParameterRecords(data, p.Dimension())
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := p.validateRecordKey(r.Key); err != nil {
			return err
		}
	}
	p.records = records
	p.markAssigned()
	return nil
}

// validateRecordKey checks each key label against the domain set's records
// when they are known. Domain forwarding skips the check: the labels are
// meant to grow the sets.
func (p *Parameter) validateRecordKey(key []string) error {
	if len(key) != p.Dimension() {
		return validationf(
			"parameter %q: record key %v has %d labels, dimension is %d",
			p.name, key, len(key), p.Dimension())
	}
	if p.forwarding {
		return nil
	}
	pos := 0
	for _, d := range p.domain {
		root := d.Root()
		for k := 0; k < d.Dimension(); k++ {
			if root != nil && root.Len() > 0 && !root.contains(key[pos]) {
				return validationf(
					"parameter %q: label %q is not a member of set %q",
					p.name, key[pos], root.Name())
			}
			pos++
		}
	}
	return nil
}

// Records returns the records in insertion order.
func (p *Parameter) Records() []ParameterRecord { return p.records }

// Ref builds an indexed view for use in expressions and assignments.
func (p *Parameter) Ref(idx ...Index) (*ParamRef, error) {
	dom, err := expandIndices(p, idx)
	if err != nil {
		return nil, err
	}
	return newParamRef(p, p.name, dom), nil
}

// Operand implementation: a bare parameter reference spans its declared
// domain, the shorthand for p.Ref(p.Domain()...).

func (p *Parameter) Render() string {
	if len(p.domain) == 0 {
		return p.name
	}
	return p.name + domainText(indexSetsToIndices(p.domain))
}

func (p *Parameter) FreeDomain() []IndexSet       { return refDomain(indexSetsToIndices(p.domain)) }
func (p *Parameter) ControlledDomain() []IndexSet { return nil }

func (p *Parameter) substitute(sub substitution) Operand {
	return newParamRef(p, p.name, substituteIndices(indexSetsToIndices(p.domain), sub))
}

func (p *Parameter) declaration() string {
	var b strings.Builder
	if len(p.domain) == 0 {
		b.WriteString("Scalar ")
	} else {
		b.WriteString("Parameter ")
	}
	b.WriteString(p.name)
	b.WriteString(domainText(indexSetsToIndices(p.domain)))
	if p.description != "" {
		b.WriteString(` "` + p.description + `"`)
	}
	if len(p.records) > 0 {
		parts := make([]string, len(p.records))
		for i, r := range p.records {
			value := renderValue(r.Value)
			if len(r.Key) == 0 {
				parts[i] = value
			} else {
				parts[i] = strings.Join(r.Key, ".") + " " + value
			}
		}
		b.WriteString(" / " + strings.Join(parts, ", ") + " /")
	}
	b.WriteString(";")
	return b.String()
}

// renderValue formats a numeric payload for a data block, spelling the
// runtime's special values by name so they round-trip losslessly. Unlike
// expression literals, data values are never parenthesized.
func renderValue(v float64) string {
	if s := sentinel.Classify(v); s != sentinel.None {
		return sentinel.Name(s)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
