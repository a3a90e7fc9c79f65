package plugin

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// goToStarlark converts a Go value to a Starlark value.
// Supported types: string, int, int64, float64, bool, []string, []any,
// map[string]any.
func goToStarlark(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}

	switch val := v.(type) {
	case string:
		return starlark.String(val), nil

	case int:
		return starlark.MakeInt(val), nil

	case int64:
		return starlark.MakeInt64(val), nil

	case float64:
		return starlark.Float(val), nil

	case bool:
		return starlark.Bool(val), nil

	case []string:
		list := make([]starlark.Value, len(val))
		for i, s := range val {
			list[i] = starlark.String(s)
		}
		return starlark.NewList(list), nil

	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := goToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil

	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, v := range val {
			sv, err := goToStarlark(v)
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict setkey %q: %w", k, err)
			}
		}
		return dict, nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// toGo converts a Starlark value back to a Go value.
// Returns: string, int64, float64, bool, []any, map[string]any, or nil.
func toGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		return string(val), nil

	case starlark.Int:
		i, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("integer too large: %s", val.String())
		}
		return i, nil

	case starlark.Float:
		return float64(val), nil

	case starlark.Bool:
		return bool(val), nil

	case *starlark.List:
		out := make([]any, 0, val.Len())
		for i := 0; i < val.Len(); i++ {
			item, err := toGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			out = append(out, item)
		}
		return out, nil

	case *starlark.Dict:
		out := make(map[string]any, val.Len())
		for _, k := range val.Keys() {
			key, ok := k.(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be a string, got %s", k.Type())
			}
			item, _, err := val.Get(k)
			if err != nil {
				return nil, err
			}
			converted, err := toGo(item)
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", string(key), err)
			}
			out[string(key)] = converted
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported starlark type: %s", v.Type())
	}
}

// attr looks up a named member on a plugin-shaped value, supporting both
// dict literals and struct() values.
func attr(v starlark.Value, name string) (starlark.Value, bool) {
	switch val := v.(type) {
	case *starlark.Dict:
		out, found, err := val.Get(starlark.String(name))
		if err != nil || !found {
			return nil, false
		}
		return out, true
	case *starlarkstruct.Struct:
		out, err := val.Attr(name)
		if err != nil || out == nil {
			return nil, false
		}
		return out, true
	default:
		return nil, false
	}
}

// attrString returns a named member as a Go string.
func attrString(v starlark.Value, name string) (string, bool) {
	raw, ok := attr(v, name)
	if !ok {
		return "", false
	}
	s, ok := raw.(starlark.String)
	if !ok {
		return "", false
	}
	return string(s), true
}

// isMapping reports whether the value can hold named members.
func isMapping(v starlark.Value) bool {
	switch v.(type) {
	case *starlark.Dict, *starlarkstruct.Struct:
		return true
	default:
		return false
	}
}
