package algebra

import "strings"

// relational operators produce equation-style nodes; they render with their
// assignment spelling everywhere except an equation definition.
var relationalOps = map[string]bool{"=g=": true, "=l=": true, "=e=": true}

// assignSpelling rewrites equation-style relational tokens into the spelling
// valid inside assignments, conditions and reduction bodies.
var assignSpelling = strings.NewReplacer(" =g= ", " >= ", " =l= ", " <= ", " =e= ", " = ")

// Expression is a binary (or, with a nil left operand, unary) node over two
// operands. It is immutable once built and never registered in a Container.
type Expression struct {
	operable
	left  Operand
	op    string
	right Operand
}

func newBinary(left Operand, op string, right Operand) *Expression {
	e := &Expression{left: left, op: op, right: right}
	e.bind(e)
	return e
}

// Op returns the operator tag of the node.
func (e *Expression) Op() string { return e.op }

// Left returns the left operand, nil for unary nodes.
func (e *Expression) Left() Operand { return e.left }

// Right returns the right operand.
func (e *Expression) Right() Operand { return e.right }

// FreeDomain is the positional union of the operands' free domains.
func (e *Expression) FreeDomain() []IndexSet {
	return mergeDomains(freeOf(e.left), freeOf(e.right))
}

// ControlledDomain is the union of the operands' controlled domains.
func (e *Expression) ControlledDomain() []IndexSet {
	return mergeDomains(controlledOf(e.left), controlledOf(e.right))
}

func (e *Expression) Render() string {
	var left, right string
	if e.left != nil {
		left = e.left.Render()
	}
	if e.right != nil {
		right = e.right.Render()
	}

	switch {
	case relationalOps[e.op]:
		// test.. a =g= b is valid, (test.. a =g= b) is not.
		return left + " " + e.op + " " + right
	case e.op == "$":
		if !strings.HasPrefix(right, "(") {
			right = "(" + right + ")"
		}
		return left + " $ " + right
	case e.left == nil:
		// unary: -x, not x
		if e.op == "-" {
			return "(-" + right + ")"
		}
		return "(" + e.op + " " + right + ")"
	}
	return "(" + left + " " + e.op + " " + right + ")"
}

func (e *Expression) substitute(sub substitution) Operand {
	var left, right Operand
	if e.left != nil {
		left = e.left.substitute(sub)
	}
	if e.right != nil {
		right = e.right.substitute(sub)
	}
	return newBinary(left, e.op, right)
}

// Reindex substitutes the free indices of op, positionally, with idx. The
// walk is structural and recursive: only leaf references to a replaced index
// change, nested reduction scopes stay untouched. The arity of idx must
// match the current free-domain length.
func Reindex(op Operand, idx ...IndexSet) (Operand, error) {
	free := op.FreeDomain()
	if len(idx) != len(free) {
		return nil, validationf(
			"reindex arity mismatch: expression has %d free indices but %d were given",
			len(free), len(idx))
	}
	sub := make(substitution, len(idx))
	for i, old := range free {
		if idx[i] == nil {
			return nil, typeErrorf("reindex position %d: index must not be nil", i)
		}
		if old.Name() != idx[i].Name() {
			sub[old.Name()] = idx[i]
		}
	}
	if len(sub) == 0 {
		return op, nil
	}
	return op.substitute(sub), nil
}
