package symplot

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ParseJSON decodes a JSON document into an expression.
func ParseJSON(data []byte) (Expr, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON(m)
}

func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	sub := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	subNumber := func(field string) (float64, error) {
		v, ok := data[field]
		if !ok {
			return 0, fmt.Errorf("%s: missing %q", typ, field)
		}
		return numberValue(typ, field, v)
	}

	switch typ {
	case "var":
		v, ok := data["name"]
		if !ok {
			return nil, fmt.Errorf("var: missing \"name\"")
		}
		name, ok := v.(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("var: \"name\" must be a non-empty string")
		}
		return V(name), nil

	case "const":
		value, err := subNumber("value")
		if err != nil {
			return nil, err
		}
		return C(value), nil

	case "add", "div":
		lf, rf := "left", "right"
		if typ == "div" {
			lf, rf = "num", "den"
		}
		l, err := sub(lf)
		if err != nil {
			return nil, err
		}
		r, err := sub(rf)
		if err != nil {
			return nil, err
		}
		if typ == "div" {
			return DivOf(l, r), nil
		}
		return AddOf(l, r), nil

	case "principal_sqrt", "sqrt":
		arg, err := sub("arg")
		if err != nil {
			return nil, err
		}
		if typ == "sqrt" {
			return SqrtOf(arg), nil
		}
		return PrincipalSqrtOf(arg), nil

	case "restrict":
		arg, err := sub("arg")
		if err != nil {
			return nil, err
		}
		lo, err := subNumber("min")
		if err != nil {
			return nil, err
		}
		hi, err := subNumber("max")
		if err != nil {
			return nil, err
		}
		return RestrictToOf(arg, lo, hi), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// jsonNumber returns v, or the token numberValue reads back when JSON cannot
// carry v.
func jsonNumber(v float64) interface{} {
	switch {
	case math.IsNaN(v):
		return "undefined"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return v
}

// numberValue accepts JSON numbers and the strings written by ToJSON for
// values JSON cannot carry.
func numberValue(typ, field string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		switch n {
		case "undefined":
			return math.NaN(), nil
		case "+Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
	}
	return 0, fmt.Errorf("%s: %q must be a number", typ, field)
}
