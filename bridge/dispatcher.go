package bridge

import "strings"

type matcher func(text string) (arg string, ok bool)

func exactly(command string) matcher {
	return func(text string) (string, bool) {
		return "", text == command
	}
}

func prefixed(prefix string) matcher {
	return func(text string) (string, bool) {
		if !strings.HasPrefix(text, prefix) {
			return "", false
		}

		return text[len(prefix):], true
	}
}

// A CommandHandler runs one command on behalf of the sending client.
type CommandHandler func(sender *Client, arg string)

type rule struct {
	name   string
	match  matcher
	handle CommandHandler
}

// A Dispatcher routes command text to handlers. Rules are tried in order and
// the first match wins. Text that matches no rule is ignored.
type Dispatcher struct {
	rules []rule
}

// Exact adds a rule that matches the whole command text.
func (d *Dispatcher) Exact(name, command string, h CommandHandler) {
	d.rules = append(d.rules, rule{name: name, match: exactly(command), handle: h})
}

// Prefix adds a rule that matches a command prefix. The handler receives the
// text after the prefix.
func (d *Dispatcher) Prefix(name, prefix string, h CommandHandler) {
	d.rules = append(d.rules, rule{name: name, match: prefixed(prefix), handle: h})
}

// Dispatch runs the first matching rule and returns its name. It returns
// false if no rule matched.
func (d *Dispatcher) Dispatch(sender *Client, text string) (string, bool) {
	for _, r := range d.rules {
		arg, ok := r.match(text)
		if !ok {
			continue
		}

		r.handle(sender, arg)

		return r.name, true
	}

	return "", false
}

// Rules returns the rule names in matching order.
func (d *Dispatcher) Rules() []string {
	names := make([]string, 0, len(d.rules))
	for _, r := range d.rules {
		names = append(names, r.name)
	}

	return names
}
