package prompt

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Rule is an input check paired with the message shown when it fails.
type Rule struct {
	Message string
	Check   func(string) bool
}

// Valid reports whether value passes the rule. A rule without a check
// accepts everything.
func (r Rule) Valid(value string) bool {
	return r.Check == nil || r.Check(value)
}

// TagRule builds a rule from a validator tag such as "required,number".
func TagRule(tag, message string) Rule {
	return Rule{
		Message: message,
		Check:   func(v string) bool { return validate.Var(v, tag) == nil },
	}
}

// NonBlank rejects empty and whitespace-only input.
func NonBlank(message string) Rule {
	r := TagRule("required", message)
	check := r.Check
	r.Check = func(v string) bool { return check(strings.TrimSpace(v)) }
	return r
}

// Digits accepts a non-empty string of ASCII digits.
func Digits(message string) Rule {
	return TagRule("required,number", message)
}

// EmailLike accepts any input containing an "@".
func EmailLike(message string) Rule {
	return TagRule("required,contains=@", message)
}

// Any accepts every input, including the empty string.
var Any = Rule{}
