package operation

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"

	"eagle-mcp/internal/eagle"
)

// Build validates args against the descriptor and returns the wire mapping. A
// parameter is sent whenever its key is present in args, including "" and 0.
// Absent keys and JSON null are left out.
func (d Descriptor) Build(args map[string]any) (*eagle.Params, error) {
	return buildParams(d.Params, args, "")
}

func buildParams(params []Param, args map[string]any, prefix string) (*eagle.Params, error) {
	var unknown []string
	for k := range args {
		if !slices.ContainsFunc(params, func(p Param) bool { return p.Name == k }) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, invalid("%sunknown argument %q", prefix, unknown[0])
	}

	out := eagle.NewParams()
	for _, p := range params {
		v, ok := args[p.Name]
		if !ok || v == nil {
			if p.Required {
				return nil, invalid("%s%s is required", prefix, p.Name)
			}
			continue
		}
		wire, err := p.convert(v, prefix+p.Name)
		if err != nil {
			return nil, err
		}
		out.Set(p.wireName(), wire)
	}
	return out, nil
}

func (p Param) convert(v any, name string) (any, error) {
	switch p.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, invalid("%s must be a string", name)
		}
		if len(p.Enum) > 0 && !slices.Contains(p.Enum, s) {
			return nil, invalid("%s must be one of %v, got %q", name, p.Enum, s)
		}
		return s, nil

	case KindInteger:
		n, ok := toInt(v)
		if !ok {
			return nil, invalid("%s must be an integer", name)
		}
		if p.Min != nil && float64(n) < *p.Min {
			return nil, invalid("%s must be >= %g, got %d", name, *p.Min, n)
		}
		if p.Max != nil && float64(n) > *p.Max {
			return nil, invalid("%s must be <= %g, got %d", name, *p.Max, n)
		}
		return n, nil

	case KindBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, invalid("%s must be a boolean", name)
		}
		return b, nil

	case KindStringArray:
		ss, ok := toStrings(v)
		if !ok {
			return nil, invalid("%s must be an array of strings", name)
		}
		if len(ss) < p.MinItems {
			return nil, invalid("%s must contain at least %d item(s)", name, p.MinItems)
		}
		return ss, nil

	case KindStringMap:
		m, ok := toStringMap(v)
		if !ok {
			return nil, invalid("%s must be an object of string values", name)
		}
		return m, nil

	case KindObjectArray:
		list, ok := v.([]any)
		if !ok {
			return nil, invalid("%s must be an array of objects", name)
		}
		if len(list) < p.MinItems {
			return nil, invalid("%s must contain at least %d item(s)", name, p.MinItems)
		}
		out := make([]*eagle.Params, 0, len(list))
		for i, e := range list {
			obj, ok := e.(map[string]any)
			if !ok {
				return nil, invalid("%s[%d] must be an object", name, i)
			}
			built, err := buildParams(p.Items, obj, fmt.Sprintf("%s[%d].", name, i))
			if err != nil {
				return nil, err
			}
			out = append(out, built)
		}
		return out, nil
	}
	return nil, invalid("%s has an unsupported type", name)
}

// ValidationError describes arguments that were rejected locally. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func toStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func toStringMap(v any) (map[string]string, bool) {
	switch t := v.(type) {
	case map[string]string:
		return t, true
	case map[string]any:
		out := make(map[string]string, len(t))
		for k, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	}
	return nil, false
}
