package fsdoc

import (
	"fmt"
	"regexp"
	"sort"
)

// Validator is an interface for validating decoded variables.
type Validator interface {
	// Validate checks if the value is valid.
	// Returns nil if valid, or an error if invalid.
	Validate(name string, value any) error
}

// RegexValidator validates the printed value against a regular expression.
// Lists are checked item by item.
type RegexValidator struct {
	Pattern     *regexp.Regexp
	Description string // Human-readable description of what the pattern expects
}

// Validate implements the Validator interface.
func (v *RegexValidator) Validate(name string, value any) error {
	items, ok := value.([]any)
	if !ok {
		items = []any{value}
	}
	for _, item := range items {
		if !v.Pattern.MatchString(pyStr(item)) {
			return NewValidationError(
				name,
				value,
				fmt.Sprintf("value does not match expected pattern: %s", v.Description),
			)
		}
	}
	return nil
}

// FuncValidator uses a custom function to validate a value.
type FuncValidator struct {
	ValidateFunc func(name string, value any) error
}

// Validate implements the Validator interface.
func (v *FuncValidator) Validate(name string, value any) error {
	return v.ValidateFunc(name, value)
}

// ValidatorRegistry manages validators for different variables.
type ValidatorRegistry struct {
	validators map[string][]Validator
	required   map[string]bool
}

// NewValidatorRegistry creates a new validator registry.
func NewValidatorRegistry() *ValidatorRegistry {
	return &ValidatorRegistry{
		validators: make(map[string][]Validator),
		required:   make(map[string]bool),
	}
}

// Register adds a validator for a variable.
// Multiple validators can be registered for the same variable.
func (r *ValidatorRegistry) Register(name string, validator Validator) {
	if validator == nil {
		return
	}
	r.validators[name] = append(r.validators[name], validator)
}

// RegisterRegex creates and registers a RegexValidator.
func (r *ValidatorRegistry) RegisterRegex(name, pattern, description string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid regex pattern for variable %s: %w", name, err)
	}

	r.Register(name, &RegexValidator{
		Pattern:     re,
		Description: description,
	})
	return nil
}

// RegisterFunc creates and registers a FuncValidator.
func (r *ValidatorRegistry) RegisterFunc(name string, validateFunc func(string, any) error) {
	r.Register(name, &FuncValidator{
		ValidateFunc: validateFunc,
	})
}

// Require marks variables that must be present.
func (r *ValidatorRegistry) Require(names ...string) {
	for _, n := range names {
		r.required[n] = true
	}
}

// ValidateVariables checks vars against every registered rule, in variable
// name order. It returns the first failure: a *MissingVariableError for an
// absent required variable or the validator's error otherwise. Variables
// that are absent and not required are not validated.
func (r *ValidatorRegistry) ValidateVariables(vars Variables) error {
	names := make(map[string]bool, len(r.validators)+len(r.required))
	for n := range r.validators {
		names[n] = true
	}
	for n := range r.required {
		names[n] = true
	}
	ordered := make([]string, 0, len(names))
	for n := range names {
		ordered = append(ordered, n)
	}
	sort.Strings(ordered)

	for _, name := range ordered {
		value, ok := vars[name]
		if !ok {
			if r.required[name] {
				return &MissingVariableError{Variable: name}
			}
			continue
		}
		for _, validator := range r.validators[name] {
			if err := validator.Validate(name, value); err != nil {
				return err
			}
		}
	}

	return nil
}
