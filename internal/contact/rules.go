package contact

import "regexp"

// Rule is the validation applied to one field.
type Rule struct {
	Required       bool
	Pattern        *regexp.Regexp
	PatternMessage string
}

// emailPattern accepts local@domain.anything; it is a shape check, not RFC 5322.
var emailPattern = regexp.MustCompile(`[^@]+@[^.]+\..+`)

// Rules are the contact form's field rules.
var Rules = map[Field]Rule{
	FieldName: {Required: true},
	FieldEmail: {
		Required:       true,
		Pattern:        emailPattern,
		PatternMessage: "Please enter a valid email address",
	},
	FieldMessage: {Required: true},
}

// ValidateField checks value against the rule for f. Required means the raw
// value is non-empty; whitespace counts as a value.
func ValidateField(f Field, value string) *FieldError {
	rule, ok := Rules[f]
	if !ok {
		return nil
	}
	if value == "" {
		if rule.Required {
			return &FieldError{Field: f, Message: string(f) + " is required"}
		}
		return nil
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return &FieldError{Field: f, Message: rule.PatternMessage}
	}
	return nil
}

// Validate checks every field and returns the failures in display order.
func Validate(v Values) []*FieldError {
	var errs []*FieldError
	for _, f := range Fields {
		if err := ValidateField(f, v.Get(f)); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
