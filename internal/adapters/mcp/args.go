package mcpadapter

import (
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"ravegraph/internal/domain"
)

// args reads typed tool arguments, keeping the first failure. JSON numbers
// arrive as float64 and must be whole.
type args struct {
	m   map[string]any
	err error
}

func argsOf(req mcp.CallToolRequest) *args {
	return &args{m: req.GetArguments()}
}

func (a *args) fail(field, format string, v ...any) {
	if a.err == nil {
		a.err = domain.Invalid(field, format, v...)
	}
}

func (a *args) str(name string) string {
	raw, ok := a.m[name]
	if !ok || raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		a.fail(name, "must be a string")
	}
	return s
}

func (a *args) optInt(name string) *int {
	raw, ok := a.m[name]
	if !ok || raw == nil {
		return nil
	}
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) {
		a.fail(name, "must be an integer")
		return nil
	}
	n := int(f)
	return &n
}

func (a *args) num(name string) int {
	n := a.optInt(name)
	if n == nil {
		a.fail(name, "is required")
		return 0
	}
	return *n
}

func (a *args) optID(name string) *int64 {
	n := a.optInt(name)
	if n == nil {
		return nil
	}
	if *n <= 0 {
		a.fail(name, "must be positive")
		return nil
	}
	id := int64(*n)
	return &id
}

func (a *args) id(name string) int64 {
	id := a.optID(name)
	if id == nil {
		a.fail(name, "is required")
		return 0
	}
	return *id
}

func (a *args) flag(name string) bool {
	raw, ok := a.m[name]
	if !ok || raw == nil {
		return false
	}
	b, ok := raw.(bool)
	if !ok {
		a.fail(name, "must be a boolean")
	}
	return b
}

func (a *args) strings(name string) []string {
	raw, ok := a.m[name]
	if !ok || raw == nil {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		a.fail(name, "must be an array of strings")
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			a.fail(name, "must be an array of strings")
			return nil
		}
		out = append(out, s)
	}
	return out
}

// ids returns nil when the argument is absent, which differs from an empty array.
func (a *args) ids(name string) []int64 {
	raw, ok := a.m[name]
	if !ok || raw == nil {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		a.fail(name, "must be an array of integers")
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, it := range items {
		f, ok := it.(float64)
		if !ok || f != math.Trunc(f) {
			a.fail(name, "must be an array of integers")
			return nil
		}
		out = append(out, int64(f))
	}
	return out
}

func (a *args) object(name string) map[string]any {
	raw, ok := a.m[name]
	if !ok || raw == nil {
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		a.fail(name, "must be an object")
	}
	return obj
}

func (a *args) timestamp(name string) *time.Time {
	s := a.str(name)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		a.fail(name, "must be an RFC 3339 timestamp")
		return nil
	}
	return &t
}

func (a *args) optStr(name string) *string {
	s := a.str(name)
	if s == "" {
		return nil
	}
	return &s
}

func enum[T ~string](a *args, name string, all []T) T {
	raw := a.str(name)
	v, err := domain.ParseEnum(name, raw, all)
	if err != nil && a.err == nil {
		a.err = err
	}
	return v
}
