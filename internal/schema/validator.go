package schema

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Validator is the compiled acceptance rule for one descriptor's input
// schema. Compiled once per load; never reused stale across a reload.
type Validator struct {
	name     string
	rules    map[string]propertyRule
	required []string
}

// propertyRule is the acceptance rule for a single declared property.
// A non-empty enum overrides the base type check.
type propertyRule struct {
	typ  string
	enum []any
}

// Result is the discriminated outcome of a validation run. When Valid is
// true, Data holds the argument object as a concrete typed structure.
type Result struct {
	Valid  bool
	Data   map[string]any
	Errors []string
}

// ErrorText joins all violation messages into one human-readable string.
func (r Result) ErrorText() string {
	return strings.Join(r.Errors, "; ")
}

// Compile derives a Validator from a descriptor's input schema.
func Compile(d *Descriptor) *Validator {
	rules := make(map[string]propertyRule, len(d.InputSchema.Properties))
	for name, prop := range d.InputSchema.Properties {
		rules[name] = propertyRule{typ: prop.Type, enum: prop.Enum}
	}
	required := make([]string, len(d.InputSchema.Required))
	copy(required, d.InputSchema.Required)
	sort.Strings(required)
	return &Validator{name: d.Name, rules: rules, required: required}
}

// Validate checks an argument object against the compiled rules. Every
// violated property is reported, not just the first. Properties not declared
// in the schema pass through untouched.
func (v *Validator) Validate(args map[string]any) Result {
	if args == nil {
		args = map[string]any{}
	}

	var errs []string

	for _, name := range v.required {
		if _, ok := args[name]; !ok {
			errs = append(errs, fmt.Sprintf("missing required property %q", name))
		}
	}

	// Deterministic error ordering for declared properties.
	names := make([]string, 0, len(v.rules))
	for name := range v.rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val, ok := args[name]
		if !ok {
			continue
		}
		rule := v.rules[name]
		if len(rule.enum) > 0 {
			if !enumContains(rule.enum, val) {
				errs = append(errs, fmt.Sprintf("property %q must be one of %v, got %v", name, rule.enum, val))
			}
			continue
		}
		if msg := checkType(rule.typ, val); msg != "" {
			errs = append(errs, fmt.Sprintf("property %q %s", name, msg))
		}
	}

	if len(errs) > 0 {
		return Result{Valid: false, Errors: errs}
	}
	return Result{Valid: true, Data: args}
}

// checkType applies the base acceptance rule for a declared type. Unknown
// types accept any value.
func checkType(typ string, val any) string {
	switch typ {
	case "string":
		if _, ok := val.(string); !ok {
			return fmt.Sprintf("must be a string, got %T", val)
		}
	case "boolean":
		if _, ok := val.(bool); !ok {
			return fmt.Sprintf("must be a boolean, got %T", val)
		}
	case "number":
		if _, ok := asFloat(val); !ok {
			return fmt.Sprintf("must be a number, got %T", val)
		}
	case "integer":
		f, ok := asFloat(val)
		if !ok {
			return fmt.Sprintf("must be an integer, got %T", val)
		}
		if f != math.Trunc(f) {
			return fmt.Sprintf("must be a whole number, got %v", val)
		}
	case "object":
		if _, ok := val.(map[string]any); !ok {
			return fmt.Sprintf("must be an object, got %T", val)
		}
	}
	return ""
}

// asFloat normalizes JSON and native Go numeric values to float64.
func asFloat(val any) (float64, bool) {
	switch n := val.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// enumContains reports whether val matches one of the listed literals.
// Numeric literals are compared by value so that 5 matches 5.0.
func enumContains(enum []any, val any) bool {
	for _, lit := range enum {
		if reflect.DeepEqual(lit, val) {
			return true
		}
		lf, lok := asFloat(lit)
		vf, vok := asFloat(val)
		if lok && vok && lf == vf {
			return true
		}
	}
	return false
}
