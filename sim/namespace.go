package sim

// Namespace is the host's named variable table together with its
// calculator. Expressions are opaque to the bridge.
type Namespace interface {
	// EnumerateNames returns the names of the host variables, scanning at
	// most max entries and stopping at the first absent entry.
	EnumerateNames(max int) []string

	// Evaluate runs a numeric expression and returns its value.
	Evaluate(expression string) float64

	// EvaluateString runs a textual expression. The result is at most
	// maxLen bytes long.
	EvaluateString(expression string, maxLen int) string

	// Execute runs an expression for its side effects only.
	Execute(expression string)
}
