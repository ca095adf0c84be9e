package algebra

import "strings"

// Operation is an indexed reduction node: sum, prod, smin or smax over one
// or more bound indices. The bound indices are contracted away; they join
// the controlled domain of the result.
type Operation struct {
	operable
	opName string
	bound  []IndexSet
	cond   Operand
	body   Operand
}

func newOperation(opName string, over any, body any) *Operation {
	o := &Operation{opName: opName, bound: toIndexSets(over), body: mustOperand(body)}
	if len(o.bound) == 0 {
		panic(typeErrorf("%s requires at least one index", opName))
	}
	o.bind(o)
	return o
}

// toIndexSets accepts a single index symbol or a slice of them.
func toIndexSets(over any) []IndexSet {
	switch x := over.(type) {
	case IndexSet:
		return []IndexSet{x}
	case []IndexSet:
		return x
	}
	panic(typeErrorf("reduction index must be an IndexSet or []IndexSet, got %T", over))
}

// Sum builds sum(over, body).
func Sum(over any, body any) *Operation { return newOperation("sum", over, body) }

// Product builds prod(over, body).
func Product(over any, body any) *Operation { return newOperation("prod", over, body) }

// Smin builds smin(over, body).
func Smin(over any, body any) *Operation { return newOperation("smin", over, body) }

// Smax builds smax(over, body).
func Smax(over any, body any) *Operation { return newOperation("smax", over, body) }

// OverWhere attaches a $ condition to the index list, restricting the
// tuples the reduction ranges over.
func (o *Operation) OverWhere(cond any) *Operation {
	res := &Operation{opName: o.opName, bound: o.bound, cond: mustOperand(cond), body: o.body}
	res.bind(res)
	return res
}

// Bound returns the reduction's bound indices.
func (o *Operation) Bound() []IndexSet { return o.bound }

// FreeDomain is the free domain of body and condition minus the bound
// indices.
func (o *Operation) FreeDomain() []IndexSet {
	inner := mergeDomains(freeOf(o.body), freeOf(o.cond))
	out := make([]IndexSet, 0, len(inner))
	for _, d := range inner {
		if !containsIndex(o.bound, d) {
			out = append(out, d)
		}
	}
	return out
}

// ControlledDomain is the bound indices plus everything already contracted
// inside the operands.
func (o *Operation) ControlledDomain() []IndexSet {
	inner := mergeDomains(controlledOf(o.body), controlledOf(o.cond))
	return mergeDomains(o.bound, inner)
}

func (o *Operation) Render() string {
	index := o.indexText()
	body := o.body.Render()
	// relational nodes inside a reduction body use assignment spelling
	body = assignSpelling.Replace(body)
	return o.opName + "(" + index + "," + body + ")"
}

func (o *Operation) indexText() string {
	var text string
	if len(o.bound) == 1 {
		text = o.bound[0].Name()
	} else {
		names := make([]string, len(o.bound))
		for i, b := range o.bound {
			names[i] = b.Name()
		}
		text = "(" + strings.Join(names, ",") + ")"
	}
	if o.cond != nil {
		condText := assignSpelling.Replace(o.cond.Render())
		if !strings.HasPrefix(condText, "(") {
			condText = "(" + condText + ")"
		}
		text += "$" + condText
	}
	return text
}

// substitute rewrites the body and condition, shadowing mapping entries for
// the reduction's own bound indices so nested scopes stay untouched.
func (o *Operation) substitute(sub substitution) Operand {
	inner := make(substitution, len(sub))
	for name, repl := range sub {
		if !boundContains(o.bound, name) {
			inner[name] = repl
		}
	}
	if len(inner) == 0 {
		return o
	}
	res := &Operation{opName: o.opName, bound: o.bound, body: o.body.substitute(inner)}
	if o.cond != nil {
		res.cond = o.cond.substitute(inner)
	}
	res.bind(res)
	return res
}

func boundContains(bound []IndexSet, name string) bool {
	for _, b := range bound {
		if b.Name() == name {
			return true
		}
	}
	return false
}

// call is a builtin function application such as ord(i) or sqrt(x).
type call struct {
	operable
	name string
	args []Operand
}

func newCall(name string, args ...Operand) *call {
	c := &call{name: name, args: args}
	c.bind(c)
	return c
}

func (c *call) Render() string {
	parts := make([]string, len(c.args))
	for i, a := range c.args {
		parts[i] = a.Render()
	}
	return c.name + "(" + strings.Join(parts, ",") + ")"
}

func (c *call) FreeDomain() []IndexSet {
	var out []IndexSet
	for _, a := range c.args {
		out = mergeDomains(out, freeOf(a))
	}
	return out
}

func (c *call) ControlledDomain() []IndexSet {
	var out []IndexSet
	for _, a := range c.args {
		out = mergeDomains(out, controlledOf(a))
	}
	return out
}

func (c *call) substitute(sub substitution) Operand {
	args := make([]Operand, len(c.args))
	for i, a := range c.args {
		args[i] = a.substitute(sub)
	}
	return newCall(c.name, args...)
}

// Ord is the 1-based position of the current element of a one-dimensional
// index symbol.
func Ord(s IndexSet) Operand {
	if s.Dimension() != 1 {
		panic(validationf("ord requires a one-dimensional set, %q has dimension %d", s.Name(), s.Dimension()))
	}
	return newCall("ord", s)
}

// Card is the record count of a symbol.
func Card(sym Symbol) Operand {
	return newCall("card", word(sym.Name()))
}

// SameAs compares two index symbols element-wise.
func SameAs(a, b IndexSet) Operand {
	return newCall("sameAs", a, b)
}

// Sqrt builds sqrt(x).
func Sqrt(x any) Operand { return newCall("sqrt", mustOperand(x)) }

// Sqr builds sqr(x).
func Sqr(x any) Operand { return newCall("sqr", mustOperand(x)) }

// Abs builds abs(x).
func Abs(x any) Operand { return newCall("abs", mustOperand(x)) }

// Exp builds exp(x).
func Exp(x any) Operand { return newCall("exp", mustOperand(x)) }

// Log builds log(x).
func Log(x any) Operand { return newCall("log", mustOperand(x)) }
