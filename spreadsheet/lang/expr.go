package lang

import "math"

// CellRef is the parser's view of a cell reference: raw row/col as
// decoded from A1 text, before the owning layer validates it against
// grid bounds.
type CellRef struct {
	Row int
	Col int
}

// Lookup resolves a referenced cell to a number during evaluation. It
// may return a *FormulaError, which Evaluate propagates unchanged.
type Lookup func(CellRef) (float64, error)

// FormulaError is the evaluation-time error value a Lookup or an
// arithmetic step can raise. It is not a Go error in the idiomatic
// sense — it's data the caller re-wraps into its own error category —
// but satisfies the error interface so it can cross the Evaluate
// boundary via a normal return.
type FormulaError struct {
	Category ErrorCategory
}

type ErrorCategory int

const (
	ErrRef ErrorCategory = iota
	ErrValue
	ErrDiv0
)

func (e *FormulaError) Error() string { return "formula error" }

// Expression is an evaluable arithmetic tree produced by Parse.
type Expression interface {
	Evaluate(lookup Lookup) (float64, error)
	References() []CellRef
	String() string
}

type numberNode struct {
	value float64
	text  string
}

func (n *numberNode) Evaluate(Lookup) (float64, error) { return n.value, nil }
func (n *numberNode) References() []CellRef            { return nil }
func (n *numberNode) String() string                   { return n.text }

type refNode struct {
	ref  CellRef
	text string
}

func (n *refNode) Evaluate(lookup Lookup) (float64, error) { return lookup(n.ref) }
func (n *refNode) References() []CellRef                   { return []CellRef{n.ref} }
func (n *refNode) String() string                           { return n.text }

type unaryNode struct {
	negative bool
	operand  Expression
}

func (n *unaryNode) Evaluate(lookup Lookup) (float64, error) {
	v, err := n.operand.Evaluate(lookup)
	if err != nil {
		return 0, err
	}
	if n.negative {
		v = -v
	}
	return checkFinite(v)
}

func (n *unaryNode) References() []CellRef { return n.operand.References() }

func (n *unaryNode) String() string {
	operand := n.operand.String()
	if _, isBinary := n.operand.(*binaryNode); isBinary {
		operand = "(" + operand + ")"
	}
	sign := "+"
	if n.negative {
		sign = "-"
	}
	return sign + operand
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

type binaryNode struct {
	op    binaryOp
	left  Expression
	right Expression
}

func (n *binaryNode) Evaluate(lookup Lookup) (float64, error) {
	left, err := n.left.Evaluate(lookup)
	if err != nil {
		return 0, err
	}
	right, err := n.right.Evaluate(lookup)
	if err != nil {
		return 0, err
	}
	var result float64
	switch n.op {
	case opAdd:
		result = left + right
	case opSub:
		result = left - right
	case opMul:
		result = left * right
	case opDiv:
		result = left / right
	}
	return checkFinite(result)
}

func (n *binaryNode) References() []CellRef {
	return append(n.left.References(), n.right.References()...)
}

func (n *binaryNode) String() string {
	return n.side(n.left, false) + n.opString() + n.side(n.right, true)
}

// side renders a child operand, adding parentheses only where the
// strict left-to-right, same-precedence evaluation order would
// otherwise change under the standard infix reading: a same-or-lower
// precedence child on the right of a left-associative operator always
// needs them, on the left only a strictly lower precedence does.
func (n *binaryNode) side(child Expression, isRight bool) string {
	childPrec := precedence(child)
	parentPrec := precedence(n)
	needsParens := childPrec < parentPrec || (isRight && childPrec == parentPrec)
	if needsParens {
		return "(" + child.String() + ")"
	}
	return child.String()
}

func (n *binaryNode) opString() string {
	switch n.op {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "/"
	default:
		return "?"
	}
}

// precedence returns the binding strength of a node for minimal
// parenthesization: lower means it binds more loosely. Non-binary
// nodes (numbers, refs, unary) always bind the tightest.
func precedence(e Expression) int {
	b, ok := e.(*binaryNode)
	if !ok {
		return 3
	}
	switch b.op {
	case opAdd, opSub:
		return 1
	case opMul, opDiv:
		return 2
	default:
		return 3
	}
}

// checkFinite raises Div0 for any arithmetic step that produces a
// non-finite result, per the grammar's evaluation contract.
func checkFinite(v float64) (float64, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &FormulaError{Category: ErrDiv0}
	}
	return v, nil
}
