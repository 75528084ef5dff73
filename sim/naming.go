package sim

import (
	"fmt"
	"strings"
	"unicode"
)

// A Named object is an object that has a name.
type Named interface {
	// Name returns the name of the object.
	Name() string
}

// BuildName builds a dotted name from a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// ValidateName reports why a name cannot be used as a shared channel name.
// A name is a series of non-empty tokens separated by dots. Tokens must not
// contain white space or control characters.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	for _, token := range strings.Split(name, ".") {
		if token == "" {
			return fmt.Errorf("name %q has an empty element", name)
		}

		for _, r := range token {
			if unicode.IsSpace(r) || unicode.IsControl(r) {
				return fmt.Errorf(
					"name %q must not contain %q", name, r)
			}
		}
	}

	return nil
}

// NameMustBeValid panics if the name cannot be used as a channel name.
func NameMustBeValid(name string) {
	if err := ValidateName(name); err != nil {
		panic(err.Error())
	}
}
