package schema

import (
	"strings"
	"testing"
)

func compileTestValidator(t *testing.T) *Validator {
	t.Helper()
	d := &Descriptor{
		Name: "test-tool",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"name":    {Type: "string"},
				"enabled": {Type: "boolean"},
				"count":   {Type: "integer"},
				"ratio":   {Type: "number"},
				"extra":   {Type: "object"},
				"mode":    {Type: "string", Enum: []any{"fast", "slow"}},
				"custom":  {Type: "unknown-kind"},
			},
			Required: []string{"name"},
		},
	}
	return Compile(d)
}

func TestValidate_RequiredMissing(t *testing.T) {
	v := compileTestValidator(t)

	res := v.Validate(map[string]any{})
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if !strings.Contains(res.ErrorText(), `"name"`) {
		t.Errorf("error should name the missing property, got %q", res.ErrorText())
	}

	res = v.Validate(map[string]any{"name": "widget"})
	if !res.Valid {
		t.Errorf("expected valid once required property supplied, got %v", res.Errors)
	}
}

func TestValidate_TypeChecks(t *testing.T) {
	v := compileTestValidator(t)

	tests := []struct {
		desc  string
		args  map[string]any
		valid bool
	}{
		{"string ok", map[string]any{"name": "x"}, true},
		{"string wrong type", map[string]any{"name": 42}, false},
		{"boolean ok", map[string]any{"name": "x", "enabled": true}, true},
		{"boolean wrong type", map[string]any{"name": "x", "enabled": "yes"}, false},
		{"integer ok float64", map[string]any{"name": "x", "count": float64(3)}, true},
		{"integer ok int", map[string]any{"name": "x", "count": 3}, true},
		{"integer fractional", map[string]any{"name": "x", "count": 3.5}, false},
		{"integer wrong type", map[string]any{"name": "x", "count": "3"}, false},
		{"number ok", map[string]any{"name": "x", "ratio": 0.5}, true},
		{"number wrong type", map[string]any{"name": "x", "ratio": true}, false},
		{"object ok", map[string]any{"name": "x", "extra": map[string]any{"k": "v"}}, true},
		{"object wrong type", map[string]any{"name": "x", "extra": []any{"v"}}, false},
		{"unknown type accepts anything", map[string]any{"name": "x", "custom": []any{1, 2}}, true},
		{"undeclared property passes through", map[string]any{"name": "x", "unknown": 99}, true},
	}

	for _, tt := range tests {
		res := v.Validate(tt.args)
		if res.Valid != tt.valid {
			t.Errorf("%s: valid=%v, want %v (errors: %v)", tt.desc, res.Valid, tt.valid, res.Errors)
		}
	}
}

func TestValidate_EnumOverridesBaseType(t *testing.T) {
	v := compileTestValidator(t)

	res := v.Validate(map[string]any{"name": "x", "mode": "fast"})
	if !res.Valid {
		t.Errorf("listed enum value rejected: %v", res.Errors)
	}

	// A string that matches the base type but not the enum must fail.
	res = v.Validate(map[string]any{"name": "x", "mode": "medium"})
	if res.Valid {
		t.Error("unlisted enum value should be rejected even though it is a string")
	}
	if !strings.Contains(res.ErrorText(), `"mode"`) {
		t.Errorf("enum error should name the property, got %q", res.ErrorText())
	}
}

func TestValidate_NumericEnumComparedByValue(t *testing.T) {
	v := Compile(&Descriptor{
		Name: "numeric-enum",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				// JSON-decoded enum literals are float64.
				"level": {Type: "integer", Enum: []any{float64(1), float64(2)}},
			},
		},
	})

	if res := v.Validate(map[string]any{"level": 2}); !res.Valid {
		t.Errorf("int 2 should match enum literal 2.0: %v", res.Errors)
	}
	if res := v.Validate(map[string]any{"level": 3.0}); res.Valid {
		t.Error("3 is not a listed enum value")
	}
}

func TestValidate_EnumeratesEveryViolation(t *testing.T) {
	v := compileTestValidator(t)

	res := v.Validate(map[string]any{
		"enabled": "not-a-bool",
		"count":   1.5,
		"mode":    "medium",
	})
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	// Missing required "name" plus three property violations.
	if len(res.Errors) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(res.Errors), res.Errors)
	}
	for _, want := range []string{`"name"`, `"enabled"`, `"count"`, `"mode"`} {
		if !strings.Contains(res.ErrorText(), want) {
			t.Errorf("error text should mention %s: %q", want, res.ErrorText())
		}
	}
}

func TestValidate_NilArgsTreatedAsEmpty(t *testing.T) {
	v := Compile(&Descriptor{
		Name:        "no-args",
		InputSchema: InputSchema{Type: "object"},
	})
	res := v.Validate(nil)
	if !res.Valid {
		t.Errorf("nil args with no required properties should validate: %v", res.Errors)
	}
	if res.Data == nil {
		t.Error("valid result should carry a non-nil data map")
	}
}
