package algebra

import "strings"

// Implicit views: indexing a declared symbol yields a lightweight reference
// sharing the symbol's name with a computed index domain. Views are ephemeral
// expression leaves; they are never registered in the container.

// expandIndices resolves an index argument list against a symbol's declared
// domain: the All wildcard expands to the full declared domain, literals are
// checked against set membership when records are known, and the total
// dimension must match the declaration.
func expandIndices(sym Symbol, idx []Index) ([]Index, error) {
	expanded := make([]Index, 0, len(idx))
	for _, ix := range idx {
		switch ix.(type) {
		case allIndices:
			if len(idx) != 1 {
				return nil, validationf(
					"symbol %q: the All wildcard must be the only index", sym.Name())
			}
			for _, d := range sym.Domain() {
				expanded = append(expanded, d)
			}
		case IndexSet, Lit:
			expanded = append(expanded, ix)
		case nil:
			return nil, typeErrorf("symbol %q: index must not be nil", sym.Name())
		default:
			return nil, typeErrorf(
				"symbol %q: index must be a Set, Alias, Lit or All, got %T", sym.Name(), ix)
		}
	}

	given := indexArity(expanded)
	if given != sym.Dimension() {
		return nil, validationf(
			"symbol %q is referenced with %d indices but is declared with dimension %d",
			sym.Name(), given, sym.Dimension())
	}

	if err := checkIndexDomains(sym, expanded); err != nil {
		return nil, err
	}
	return expanded, nil
}

// indexArity counts index positions: a multi-dimensional index symbol spans
// several, a literal exactly one.
func indexArity(idx []Index) int {
	n := 0
	for _, ix := range idx {
		if is, ok := ix.(IndexSet); ok {
			n += is.Dimension()
		} else {
			n++
		}
	}
	return n
}

// checkIndexDomains validates literal membership and one-dimensional domain
// lineage against the declared domain.
func checkIndexDomains(sym Symbol, idx []Index) error {
	declared := sym.Domain()
	pos := 0
	for _, ix := range idx {
		switch given := ix.(type) {
		case Lit:
			if pos < len(declared) {
				if root := declared[pos].Root(); root != nil && root.Len() > 0 && !root.contains(string(given)) {
					return validationf(
						"literal index %q was not found in set %q", string(given), root.Name())
				}
			}
			pos++
		case IndexSet:
			if given.Dimension() == 1 && pos < len(declared) {
				decl := declared[pos]
				if decl.Root() != nil && decl.Dimension() == 1 && !inDomainPath(given, decl) {
					return validationf(
						"set %q is not a valid index for declared domain %q of %q",
						given.Name(), decl.Name(), sym.Name())
				}
			}
			pos += given.Dimension()
		}
	}
	return nil
}

// inDomainPath reports whether decl appears in given's domain lineage: given
// itself, its alias root, or any ancestor set reachable through the first
// domain position.
func inDomainPath(given, decl IndexSet) bool {
	target := decl.Root().Name()
	current := given
	for {
		if current.Name() == target {
			return true
		}
		root := current.Root()
		if root == nil {
			return false
		}
		if root.Name() == target {
			return true
		}
		parent := root.Domain()[0]
		if parent.Root() == nil {
			// reached the universe
			return false
		}
		if parent == current || parent == root {
			return false
		}
		current = parent
	}
}

// refDomain extracts the index symbols of a view's index list; literals bind
// a single label and contribute no free index.
func refDomain(dom []Index) []IndexSet {
	var out []IndexSet
	for _, ix := range dom {
		if is, ok := ix.(IndexSet); ok {
			if !containsIndex(out, is) {
				out = append(out, is)
			}
		}
	}
	return out
}

func substituteIndices(dom []Index, sub substitution) []Index {
	out := make([]Index, len(dom))
	for i, ix := range dom {
		if is, ok := ix.(IndexSet); ok {
			if repl, found := sub[is.Name()]; found {
				out[i] = repl
				continue
			}
		}
		out[i] = ix
	}
	return out
}

// checkAssignable validates that every free index of the right-hand side is
// controlled by the left-hand index list.
func checkAssignable(target string, lhs []Index, rhs Operand) error {
	if rhs == nil {
		return typeErrorf("assignment to %q: right-hand side must not be nil", target)
	}
	binding := refDomain(lhs)
	for _, free := range rhs.FreeDomain() {
		if !containsIndex(binding, free) {
			return validationf(
				"assignment to %q: free index %q on the right-hand side is not controlled by the left-hand side",
				target, free.Name())
		}
	}
	return nil
}

// SetRef is an indexed view of a Set or Alias, used for membership tests and
// membership assignment.
type SetRef struct {
	operable
	parent IndexSet
	dom    []Index
}

func newSetRef(parent IndexSet, dom []Index) *SetRef {
	r := &SetRef{parent: parent, dom: dom}
	r.bind(r)
	return r
}

func (r *SetRef) Render() string               { return r.parent.Name() + domainText(r.dom) }
func (r *SetRef) FreeDomain() []IndexSet       { return refDomain(r.dom) }
func (r *SetRef) ControlledDomain() []IndexSet { return nil }

func (r *SetRef) substitute(sub substitution) Operand {
	return newSetRef(r.parent, substituteIndices(r.dom, sub))
}

// Assign records a membership assignment, e.g. sub.Ref(i).Assign(true).
func (r *SetRef) Assign(rhs any) error {
	op, err := toOperand(rhs)
	if err != nil {
		return err
	}
	if err := checkAssignable(r.parent.Name(), r.dom, op); err != nil {
		return err
	}
	c := r.parent.owner()
	c.addAssignment(r.parent.Name(), r.Render()+" = "+assignSpelling.Replace(op.Render())+";")
	if sym, ok := r.parent.(Symbol); ok {
		sym.setModified(true)
	}
	return nil
}

// ParamRef is an indexed view of a Parameter, or of a Variable/Equation
// attribute such as x.lo.
type ParamRef struct {
	operable
	parent Symbol
	name   string
	dom    []Index
}

func newParamRef(parent Symbol, name string, dom []Index) *ParamRef {
	r := &ParamRef{parent: parent, name: name, dom: dom}
	r.bind(r)
	return r
}

func (r *ParamRef) Render() string               { return r.name + domainText(r.dom) }
func (r *ParamRef) FreeDomain() []IndexSet       { return refDomain(r.dom) }
func (r *ParamRef) ControlledDomain() []IndexSet { return nil }

func (r *ParamRef) substitute(sub substitution) Operand {
	return newParamRef(r.parent, r.name, substituteIndices(r.dom, sub))
}

// Assign validates the right-hand side's free domain against this view's
// index domain and appends the assignment statement, marking the parent
// symbol and the container as modified.
func (r *ParamRef) Assign(rhs any) error {
	op, err := toOperand(rhs)
	if err != nil {
		return err
	}
	if err := checkAssignable(r.name, r.dom, op); err != nil {
		return err
	}
	c := r.parent.Container()
	c.addAssignment(r.parent.Name(), r.Render()+" = "+assignSpelling.Replace(op.Render())+";")
	r.parent.setModified(true)
	return nil
}

// VarRef is an indexed view of a Variable as it appears in expressions.
type VarRef struct {
	operable
	parent *Variable
	dom    []Index
}

func newVarRef(parent *Variable, dom []Index) *VarRef {
	r := &VarRef{parent: parent, dom: dom}
	r.bind(r)
	return r
}

func (r *VarRef) Render() string               { return r.parent.Name() + domainText(r.dom) }
func (r *VarRef) FreeDomain() []IndexSet       { return refDomain(r.dom) }
func (r *VarRef) ControlledDomain() []IndexSet { return nil }

func (r *VarRef) substitute(sub substitution) Operand {
	return newVarRef(r.parent, substituteIndices(r.dom, sub))
}

// EquationRef is the domain-qualified left-hand side of an equation
// definition.
type EquationRef struct {
	parent *Equation
	dom    []Index
}

func (r *EquationRef) lhs(cond Operand) string {
	text := r.parent.Name() + domainText(r.dom)
	if cond != nil {
		condText := assignSpelling.Replace(cond.Render())
		if !strings.HasPrefix(condText, "(") {
			condText = "(" + condText + ")"
		}
		text += "$" + condText
	}
	return text
}
