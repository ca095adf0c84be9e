package algebra

import "strings"

// VarKind is the closed enumeration of variable types.
type VarKind int

const (
	VarFree VarKind = iota
	VarPositive
	VarNegative
	VarBinary
	VarInteger
)

func (k VarKind) String() string {
	switch k {
	case VarFree:
		return "free"
	case VarPositive:
		return "positive"
	case VarNegative:
		return "negative"
	case VarBinary:
		return "binary"
	case VarInteger:
		return "integer"
	}
	return "unknown"
}

// declModifier is the keyword prefix of the declaration statement.
func (k VarKind) declModifier() string {
	switch k {
	case VarPositive:
		return "Positive "
	case VarNegative:
		return "Negative "
	case VarBinary:
		return "Binary "
	case VarInteger:
		return "Integer "
	}
	return ""
}

func validVarKind(k VarKind) bool {
	return k >= VarFree && k <= VarInteger
}

// VariableRecord carries the per-label-tuple solution attributes of a
// variable.
type VariableRecord struct {
	Key      []string
	Level    float64
	Marginal float64
	Lower    float64
	Upper    float64
	Scale    float64
}

// Variable is a decision-variable symbol.
type Variable struct {
	symbolBase
	operable
	varKind VarKind
	records []VariableRecord
}

// NewVariable declares a variable of the given kind. Redeclaration must keep
// domain and kind; only the description may change.
func NewVariable(c *Container, name string, kind VarKind, opts ...Option) (*Variable, error) {
	if !validVarKind(kind) {
		return nil, validationf("variable %q: unknown variable kind %d", name, kind)
	}
	cfg := buildConfig(opts)
	if cfg.hasRecords {
		return nil, typeErrorf("variable %q: records are produced by solves; use SetRecords for presets", name)
	}

	if existing, ok := c.Get(name); ok {
		prior, isVar := existing.(*Variable)
		if !isVar {
			return nil, validationf("cannot redeclare %s %q as a Variable", existing.Kind(), name)
		}
		if !sameDomain(prior.domain, cfg.domain) {
			return nil, validationf("redeclaration of variable %q changes its domain", name)
		}
		if prior.varKind != kind {
			return nil, validationf("redeclaration of variable %q changes its kind", name)
		}
		if cfg.hasDescription {
			prior.description = cfg.description
		}
		return prior, nil
	}

	if err := c.validateOwnership(name, cfg.domain); err != nil {
		return nil, err
	}

	v := &Variable{
		symbolBase: symbolBase{
			name:        name,
			description: cfg.description,
			domain:      cfg.domain,
			cont:        c,
		},
		varKind: kind,
	}
	v.bind(v)
	if err := c.register(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Kind returns KindVariable.
func (v *Variable) Kind() Kind { return KindVariable }

// VarKind returns the variable type.
func (v *Variable) VarKind() VarKind { return v.varKind }

// Records returns the per-tuple solution attributes from the last solve.
func (v *Variable) Records() []VariableRecord { return v.records }

// SetRecords replaces the solution records, e.g. to warm-start levels.
func (v *Variable) SetRecords(records []VariableRecord) error {
	for _, r := range records {
		if len(r.Key) != v.Dimension() {
			return validationf(
				"variable %q: record key %v has %d labels, dimension is %d",
				v.name, r.Key, len(r.Key), v.Dimension())
		}
	}
	v.records = records
	v.markAssigned()
	return nil
}

// Ref builds an indexed view for use in expressions.
func (v *Variable) Ref(idx ...Index) (*VarRef, error) {
	dom, err := expandIndices(v, idx)
	if err != nil {
		return nil, err
	}
	return newVarRef(v, dom), nil
}

// Attribute views. Assigning through them produces attribute assignment
// statements such as x.lo(i) = 0.

// Lo is the lower-bound attribute view.
func (v *Variable) Lo(idx ...Index) (*ParamRef, error) { return v.attr("lo", idx) }

// Up is the upper-bound attribute view.
func (v *Variable) Up(idx ...Index) (*ParamRef, error) { return v.attr("up", idx) }

// L is the level attribute view.
func (v *Variable) L(idx ...Index) (*ParamRef, error) { return v.attr("l", idx) }

// M is the marginal attribute view.
func (v *Variable) M(idx ...Index) (*ParamRef, error) { return v.attr("m", idx) }

// Fx is the fixing attribute view: assigning it pins both bounds.
func (v *Variable) Fx(idx ...Index) (*ParamRef, error) { return v.attr("fx", idx) }

func (v *Variable) attr(attr string, idx []Index) (*ParamRef, error) {
	dom, err := expandIndices(v, idx)
	if err != nil {
		return nil, err
	}
	return newParamRef(v, v.name+"."+attr, dom), nil
}

// Operand implementation: a bare variable reference spans its declared
// domain.

func (v *Variable) Render() string {
	if len(v.domain) == 0 {
		return v.name
	}
	return v.name + domainText(indexSetsToIndices(v.domain))
}

func (v *Variable) FreeDomain() []IndexSet       { return refDomain(indexSetsToIndices(v.domain)) }
func (v *Variable) ControlledDomain() []IndexSet { return nil }

func (v *Variable) substitute(sub substitution) Operand {
	return newVarRef(v, substituteIndices(indexSetsToIndices(v.domain), sub))
}

func (v *Variable) declaration() string {
	var b strings.Builder
	b.WriteString(v.varKind.declModifier())
	b.WriteString("Variable ")
	b.WriteString(v.name)
	b.WriteString(domainText(indexSetsToIndices(v.domain)))
	if v.description != "" {
		b.WriteString(` "` + v.description + `"`)
	}
	b.WriteString(";")
	return b.String()
}
