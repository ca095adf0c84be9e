package algebra

// operable equips a node with the algebraic method set. Every concrete
// operand embeds it and binds itself once, so the methods build expressions
// with the embedding node as the left operand.
//
// The methods panic with *TypeError when handed a host value that is not an
// operand or a number; shape errors of whole expressions surface as returned
// errors from the operations that can produce them (MatMul, Reindex, Assign).
type operable struct {
	self Operand
}

func (o *operable) bind(self Operand) { o.self = self }

// Add builds self + other.
func (o *operable) Add(other any) *Expression { return newBinary(o.self, "+", mustOperand(other)) }

// Sub builds self - other.
func (o *operable) Sub(other any) *Expression { return newBinary(o.self, "-", mustOperand(other)) }

// Mul builds self * other.
func (o *operable) Mul(other any) *Expression { return newBinary(o.self, "*", mustOperand(other)) }

// Div builds self / other.
func (o *operable) Div(other any) *Expression { return newBinary(o.self, "/", mustOperand(other)) }

// Pow builds self ** other.
func (o *operable) Pow(other any) *Expression { return newBinary(o.self, "**", mustOperand(other)) }

// Neg builds -self.
func (o *operable) Neg() *Expression { return newBinary(nil, "-", o.self) }

// Ge builds the relational self >= other (an equation-style =g= node; it
// renders as >= in assignment and condition contexts).
func (o *operable) Ge(other any) *Expression { return newBinary(o.self, "=g=", mustOperand(other)) }

// Le builds the relational self <= other.
func (o *operable) Le(other any) *Expression { return newBinary(o.self, "=l=", mustOperand(other)) }

// Eq builds the relational self == other.
func (o *operable) Eq(other any) *Expression { return newBinary(o.self, "=e=", mustOperand(other)) }

// Ne builds the relational self <> other.
func (o *operable) Ne(other any) *Expression { return newBinary(o.self, "ne", mustOperand(other)) }

// Gt builds the strict comparison self > other.
func (o *operable) Gt(other any) *Expression { return newBinary(o.self, ">", mustOperand(other)) }

// Lt builds the strict comparison self < other.
func (o *operable) Lt(other any) *Expression { return newBinary(o.self, "<", mustOperand(other)) }

// And builds the logical conjunction self and other.
func (o *operable) And(other any) *Expression { return newBinary(o.self, "and", mustOperand(other)) }

// Or builds the logical disjunction self or other.
func (o *operable) Or(other any) *Expression { return newBinary(o.self, "or", mustOperand(other)) }

// Xor builds the logical exclusive-or of self and other.
func (o *operable) Xor(other any) *Expression { return newBinary(o.self, "xor", mustOperand(other)) }

// Not builds the logical negation of self.
func (o *operable) Not() *Expression { return newBinary(nil, "not", o.self) }

// Where attaches a $ condition: self is kept only where cond holds. Masked
// indexing is expressed this way, so masked and unmasked references share
// one set of domain rules.
func (o *operable) Where(cond any) *Expression { return newBinary(o.self, "$", mustOperand(cond)) }
