package dataload

// Model is the format-agnostic form of a model-data file. Declarations keep
// file order; Populate replays them against a container in that order, so
// domain sets must be declared before the symbols that index over them.
type Model struct {
	Name       string
	Sets       []SetDecl
	Aliases    []AliasDecl
	Parameters []ParameterDecl
	Scalars    []ScalarDecl
	Variables  []VariableDecl
}

// SetDecl declares one set. Records holds the raw host value; the records
// bridge in the algebra package normalizes it.
type SetDecl struct {
	Name        string
	Description string
	Domain      []string
	Singleton   bool
	Records     any
}

// AliasDecl declares one alias over an existing set or alias.
type AliasDecl struct {
	Name string
	With string
}

// ParameterDecl declares one dimensioned parameter with optional records.
type ParameterDecl struct {
	Name        string
	Description string
	Domain      []string
	Records     any
}

// ScalarDecl declares a zero-dimensional parameter.
type ScalarDecl struct {
	Name        string
	Description string
	Value       *float64
}

// VariableDecl declares one variable. Kind is the lowercase spelling of the
// variable kind: free, positive, negative, binary or integer.
type VariableDecl struct {
	Name        string
	Description string
	Kind        string
	Domain      []string
}
