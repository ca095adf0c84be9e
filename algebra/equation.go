package algebra

import "strings"

// EquationRecord carries the per-label-tuple solution attributes of an
// equation row.
type EquationRecord struct {
	Key      []string
	Level    float64
	Marginal float64
	Lower    float64
	Upper    float64
}

// Equation is an equation symbol. Declaration and definition are separate
// statements: the declaration names the symbol and its domain, the
// definition attaches a relational expression.
type Equation struct {
	symbolBase
	operable
	defined bool
	records []EquationRecord
}

// NewEquation declares an equation. Redeclaration must keep the domain;
// only the description may change.
func NewEquation(c *Container, name string, opts ...Option) (*Equation, error) {
	cfg := buildConfig(opts)

	if existing, ok := c.Get(name); ok {
		prior, isEq := existing.(*Equation)
		if !isEq {
			return nil, validationf("cannot redeclare %s %q as an Equation", existing.Kind(), name)
		}
		if !sameDomain(prior.domain, cfg.domain) {
			return nil, validationf("redeclaration of equation %q changes its domain", name)
		}
		if cfg.hasDescription {
			prior.description = cfg.description
		}
		return prior, nil
	}

	if err := c.validateOwnership(name, cfg.domain); err != nil {
		return nil, err
	}

	e := &Equation{
		symbolBase: symbolBase{
			name:        name,
			description: cfg.description,
			domain:      cfg.domain,
			cont:        c,
		},
	}
	e.bind(e)
	if err := c.register(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Kind returns KindEquation.
func (e *Equation) Kind() Kind { return KindEquation }

// Defined reports whether a defining expression has been attached.
func (e *Equation) Defined() bool { return e.defined }

// Records returns the per-row solution attributes from the last solve.
func (e *Equation) Records() []EquationRecord { return e.records }

// Definition attaches the defining relational expression over the given
// indices and appends the definition statement. The expression's top node
// must be relational, and its free domain must be controlled by the index
// list.
func (e *Equation) Definition(expr *Expression, idx ...Index) error {
	return e.DefinitionWhere(nil, expr, idx...)
}

// DefinitionWhere is Definition with a $ condition restricting the rows the
// definition applies to.
func (e *Equation) DefinitionWhere(cond Operand, expr *Expression, idx ...Index) error {
	if expr == nil {
		return typeErrorf("equation %q: definition expression must not be nil", e.name)
	}
	if !relationalOps[expr.Op()] {
		return validationf(
			"equation %q: definition must be relational (Eq, Ge or Le at the top), got %q",
			e.name, expr.Op())
	}

	dom, err := expandIndices(e, idx)
	if err != nil {
		return err
	}
	ref := &EquationRef{parent: e, dom: dom}
	if err := checkAssignable(e.name, dom, expr); err != nil {
		return err
	}
	if cond != nil {
		if err := checkAssignable(e.name, dom, cond); err != nil {
			return err
		}
	}

	e.cont.addAssignment(e.name, ref.lhs(cond)+" .. "+expr.Render()+";")
	e.defined = true
	e.markAssigned()
	return nil
}

// Operand implementation: equation attributes can appear in follow-up
// assignments (e.m, e.l). A bare reference renders over the declared domain.

func (e *Equation) Render() string {
	if len(e.domain) == 0 {
		return e.name
	}
	return e.name + domainText(indexSetsToIndices(e.domain))
}

func (e *Equation) FreeDomain() []IndexSet       { return refDomain(indexSetsToIndices(e.domain)) }
func (e *Equation) ControlledDomain() []IndexSet { return nil }

func (e *Equation) substitute(sub substitution) Operand {
	return newParamRef(e, e.name, substituteIndices(indexSetsToIndices(e.domain), sub))
}

// L is the level attribute view.
func (e *Equation) L(idx ...Index) (*ParamRef, error) { return e.attr("l", idx) }

// M is the marginal attribute view.
func (e *Equation) M(idx ...Index) (*ParamRef, error) { return e.attr("m", idx) }

func (e *Equation) attr(attr string, idx []Index) (*ParamRef, error) {
	dom, err := expandIndices(e, idx)
	if err != nil {
		return nil, err
	}
	return newParamRef(e, e.name+"."+attr, dom), nil
}

func (e *Equation) declaration() string {
	var b strings.Builder
	b.WriteString("Equation ")
	b.WriteString(e.name)
	b.WriteString(domainText(indexSetsToIndices(e.domain)))
	if e.description != "" {
		b.WriteString(` "` + e.description + `"`)
	}
	b.WriteString(";")
	return b.String()
}
