// ast.go
//
// Statement and function model. A Luma function is an ordered sequence of
// statements plus its declared parameter names; each statement is a verb and
// a list of string operands ("nouns") whose count and meaning depend on the
// verb. Both are immutable once built and shared read-only across
// invocations; statement position is the unit of control-flow addressing.
package luma

import "strings"

// Verb classifies a statement's behavior. The set is closed; the runner
// switches over it exhaustively.
type Verb int

const (
	VerbSet    Verb = iota // nouns: [name, type, valueText]
	VerbReturn             // nouns: [valueText, type]
	VerbMark               // nouns: [label]
	VerbDo                 // nouns: [target, conditionalText]
)

func (v Verb) String() string {
	switch v {
	case VerbSet:
		return "set"
	case VerbReturn:
		return "return"
	case VerbMark:
		return "mark"
	case VerbDo:
		return "do"
	}
	return "unknown"
}

// Statement is one executable unit: a verb tag and its positional operands.
type Statement struct {
	Verb  Verb     `json:"verb"`
	Nouns []string `json:"nouns"`
}

// String renders the statement for error messages.
func (s Statement) String() string {
	return s.Verb.String() + " " + strings.Join(s.Nouns, " ")
}

// Function is an ordered statement sequence plus declared parameter names.
// Arity is len(Params). ReturnType is the declared type tag applied to
// return expressions by the loader.
type Function struct {
	Name       string      `json:"name"`
	Params     []string    `json:"params"`
	ReturnType string      `json:"returnType"`
	Body       []Statement `json:"body"`
}
