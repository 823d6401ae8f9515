package spreadsheet

// ErrorCategory tags the kind of evaluation failure a formula produced.
type ErrorCategory int

const (
	ErrRef ErrorCategory = iota
	ErrValue
	ErrDiv0
)

// FormulaError is a first-class evaluation result, not an exception: it
// flows through Evaluate and Cell.GetValue like any other value and is
// cached and propagated the same way.
type FormulaError struct {
	Category ErrorCategory
}

func NewFormulaError(category ErrorCategory) FormulaError {
	return FormulaError{Category: category}
}

func (e FormulaError) Error() string {
	return e.String()
}

// ErrorTokens names the display string for each error category. A
// caller that renders error values to a user supplies its own set
// (typically loaded from config); engine-internal code that has no
// such context uses DefaultErrorTokens.
type ErrorTokens struct {
	Ref   string `yaml:"ref"`
	Value string `yaml:"value"`
	Div0  string `yaml:"div0"`
}

// DefaultErrorTokens is the token set spec.md's error taxonomy names.
var DefaultErrorTokens = ErrorTokens{Ref: "#REF!", Value: "#VALUE!", Div0: "#DIV/0!"}

// Render renders e using tokens, falling back to "#ERROR!" for an
// unrecognized category.
func (e FormulaError) Render(tokens ErrorTokens) string {
	switch e.Category {
	case ErrRef:
		return tokens.Ref
	case ErrValue:
		return tokens.Value
	case ErrDiv0:
		return tokens.Div0
	default:
		return "#ERROR!"
	}
}

// String renders e using DefaultErrorTokens. Callers with a configured
// token set should use Render instead.
func (e FormulaError) String() string {
	return e.Render(DefaultErrorTokens)
}
