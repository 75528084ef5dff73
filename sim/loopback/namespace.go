package loopback

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// A Variable is one named value of a fixture.
type Variable struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`

	// Step is added to the value on every frame.
	Step float64 `yaml:"step,omitempty"`
}

// A Fixture describes the variables of a Namespace.
type Fixture struct {
	// LVars are enumerable and listed in this order.
	LVars []Variable `yaml:"lvars"`

	// SimVars are readable with (A:NAME,unit) but not enumerable.
	SimVars []Variable `yaml:"simvars"`

	// Strings answer textual expressions verbatim.
	Strings map[string]string `yaml:"strings"`
}

// A Namespace is a variable table with a small reverse polish calculator. It
// implements sim.Namespace.
//
// Supported tokens are numbers, (L:NAME) and (A:NAME,unit) reads,
// (>L:NAME) and (>A:NAME,unit) writes, (>H:NAME) host events, and the
// operators + - * /.
type Namespace struct {
	lock sync.Mutex

	order      []string
	values     map[string]float64
	steps      map[string]float64
	strings    map[string]string
	hostEvents []string
}

// NewNamespace creates a namespace holding the fixture.
func NewNamespace(f Fixture) *Namespace {
	n := &Namespace{
		values:  make(map[string]float64),
		steps:   make(map[string]float64),
		strings: make(map[string]string),
	}

	for _, v := range f.LVars {
		key := "L:" + v.Name
		n.order = append(n.order, v.Name)
		n.values[key] = v.Value
		n.steps[key] = v.Step
	}

	for _, v := range f.SimVars {
		key := "A:" + v.Name
		n.values[key] = v.Value
		n.steps[key] = v.Step
	}

	for expr, s := range f.Strings {
		n.strings[expr] = s
	}

	return n
}

// ParseNamespace reads a YAML fixture.
func ParseNamespace(r io.Reader) (*Namespace, error) {
	f := Fixture{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("cannot parse namespace fixture: %w", err)
	}

	return NewNamespace(f), nil
}

// LoadNamespace reads a YAML fixture file.
func LoadNamespace(path string) (*Namespace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseNamespace(f)
}

// EnumerateNames returns up to max L var names in definition order.
func (n *Namespace) EnumerateNames(max int) []string {
	n.lock.Lock()
	defer n.lock.Unlock()

	count := min(max, len(n.order))

	return append([]string(nil), n.order[:count]...)
}

// Evaluate runs the expression and returns the top of the stack, or 0 if
// the stack is empty.
func (n *Namespace) Evaluate(expression string) float64 {
	n.lock.Lock()
	defer n.lock.Unlock()

	stack := n.run(expression)
	if len(stack) == 0 {
		return 0
	}

	return stack[len(stack)-1]
}

// EvaluateString answers fixture strings verbatim and formats numeric
// results otherwise.
func (n *Namespace) EvaluateString(expression string, maxLen int) string {
	n.lock.Lock()
	s, found := n.strings[expression]
	n.lock.Unlock()

	if !found {
		s = strconv.FormatFloat(n.Evaluate(expression), 'f', -1, 64)
	}

	if len(s) > maxLen {
		s = s[:maxLen]
	}

	return s
}

// Execute runs the expression for its side effects.
func (n *Namespace) Execute(expression string) {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.run(expression)
}

// Value returns a variable such as "L:A32NX_BARO" or "A:PLANE ALTITUDE".
func (n *Namespace) Value(key string) (float64, bool) {
	n.lock.Lock()
	defer n.lock.Unlock()

	v, found := n.values[key]

	return v, found
}

// HostEvents returns the (>H:NAME) events triggered so far.
func (n *Namespace) HostEvents() []string {
	n.lock.Lock()
	defer n.lock.Unlock()

	return append([]string(nil), n.hostEvents...)
}

// Step advances every variable that has a step.
func (n *Namespace) Step() {
	n.lock.Lock()
	defer n.lock.Unlock()

	for key, step := range n.steps {
		if step != 0 {
			n.values[key] += step
		}
	}
}

func (n *Namespace) run(expression string) []float64 {
	var stack []float64

	pop := func() float64 {
		if len(stack) == 0 {
			return 0
		}

		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		return v
	}

	for _, token := range tokenize(expression) {
		switch {
		case strings.HasPrefix(token, "(>H:"):
			n.hostEvents = append(n.hostEvents, variableKey(token[4:]))
		case strings.HasPrefix(token, "(>"):
			n.values[variableKey(token[2:])] = pop()
		case strings.HasPrefix(token, "("):
			stack = append(stack, n.values[variableKey(token[1:])])
		case len(token) == 1 && strings.Contains("+-*/", token):
			b, a := pop(), pop()
			stack = append(stack, apply(token[0], a, b))
		default:
			v, err := strconv.ParseFloat(token, 64)
			if err == nil {
				stack = append(stack, v)
			}
		}
	}

	return stack
}

func apply(op byte, a, b float64) float64 {
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	default:
		if b == 0 {
			return 0
		}

		return a / b
	}
}

// variableKey turns "L:NAME)" or "A:NAME,unit)" into "L:NAME" or "A:NAME".
func variableKey(ref string) string {
	ref = strings.TrimSuffix(ref, ")")
	if i := strings.IndexByte(ref, ','); i >= 0 {
		ref = ref[:i]
	}

	return strings.TrimSpace(ref)
}

// tokenize splits on white space, keeping parenthesized references whole.
func tokenize(expression string) []string {
	var tokens []string

	for i := 0; i < len(expression); {
		switch c := expression[i]; {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			end := strings.IndexByte(expression[i:], ')')
			if end < 0 {
				return tokens
			}

			tokens = append(tokens, expression[i:i+end+1])
			i += end + 1
		default:
			end := strings.IndexAny(expression[i:], " \t(")
			if end < 0 {
				end = len(expression) - i
			}

			tokens = append(tokens, expression[i:i+end])
			i += end
		}
	}

	return tokens
}
