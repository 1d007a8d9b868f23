package movie

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ExtractionError describes the first raw field that could not be read.
type ExtractionError struct {
	Path   string
	Reason string
}

func (e *ExtractionError) Error() string {
	if e.Path == "" {
		return "invalid movie record: " + e.Reason
	}
	return fmt.Sprintf("invalid movie record field %q: %s", e.Path, e.Reason)
}

// object is a decoded JSON object plus the path it was found at.
type object struct {
	path   string
	fields map[string]any
}

func asObject(v any, path string) (object, error) {
	switch t := v.(type) {
	case nil:
		return object{path: path}, nil
	case map[string]any:
		return object{path: path, fields: t}, nil
	default:
		return object{}, mismatch(path, "object", v)
	}
}

func (o object) child(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

// field looks key up and converts it with conv. Missing keys and JSON nulls yield def.
func field[T any](o object, key string, def T, conv func(v any, path string) (T, error)) (T, error) {
	v, ok := o.fields[key]
	if !ok || v == nil {
		return def, nil
	}
	return conv(v, o.child(key))
}

func toString(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch(path, "string", v)
	}
	return s, nil
}

func toStrings(v any, path string) ([]string, error) {
	items, err := toList(v, path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, err := toString(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// toTexts accepts any element type; non-strings keep their compact JSON form.
func toTexts(v any, path string) ([]string, error) {
	items, err := toList(v, path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		b, err := json.Marshal(item)
		if err != nil {
			return nil, &ExtractionError{Path: fmt.Sprintf("%s[%d]", path, i), Reason: err.Error()}
		}
		out = append(out, string(b))
	}
	return out, nil
}

func toList(v any, path string) ([]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, mismatch(path, "array", v)
	}
	return items, nil
}

func toObject(v any, path string) (object, error) {
	return asObject(v, path)
}

func toNumber(v any, path string) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, &ExtractionError{Path: path, Reason: fmt.Sprintf("invalid number %q", t.String())}
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, &ExtractionError{Path: path, Reason: fmt.Sprintf("invalid number %q", t)}
		}
		f = n
	default:
		return 0, mismatch(path, "number", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ExtractionError{Path: path, Reason: "number is not finite"}
	}
	return f, nil
}

func toInt(v any, path string) (int64, error) {
	f, err := toNumber(v, path)
	if err != nil {
		return 0, err
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, &ExtractionError{Path: path, Reason: "integer out of range"}
	}
	return int64(f), nil
}

func toScore(v any, path string) (Score, error) {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return Score{}, nil
	}
	f, err := toNumber(v, path)
	if err != nil {
		return Score{}, err
	}
	return ScoreOf(f), nil
}

// toLabel renders a rating-detail score the way it appears in distribution keys.
func toLabel(v any, path string) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return "", mismatch(path, "number or string", v)
	}
	f, err := toNumber(v, path)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func mismatch(path, want string, got any) error {
	return &ExtractionError{Path: path, Reason: fmt.Sprintf("expected %s, got %s", want, kind(got))}
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, float32, int, int64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
