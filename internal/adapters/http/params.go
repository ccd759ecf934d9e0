package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"ravegraph/internal/domain"
)

// query binds optional form-style query parameters, keeping the first
// failure. Getters return zero values once a failure has been recorded.
type query struct {
	r   *http.Request
	err error
}

func bind[T any](q *query, name string) *T {
	if q.err != nil {
		return nil
	}
	var v *T
	if err := runtime.BindQueryParameter("form", true, false, name, q.r.URL.Query(), &v); err != nil {
		q.err = domain.Invalid(name, "%v", err)
		return nil
	}
	return v
}

func (q *query) str(name string) string {
	if v := bind[string](q, name); v != nil {
		return *v
	}
	return ""
}

func (q *query) num(name string) int {
	if v := bind[int](q, name); v != nil {
		return *v
	}
	return 0
}

func (q *query) id(name string) *int64 {
	v := bind[int64](q, name)
	if v != nil && *v <= 0 {
		q.err = domain.Invalid(name, "must be positive")
		return nil
	}
	return v
}

func (q *query) flag(name string) bool {
	v := bind[bool](q, name)
	return v != nil && *v
}

// list reads a repeated parameter, tags=a&tags=b.
func (q *query) list(name string) []string {
	if v := bind[[]string](q, name); v != nil {
		return *v
	}
	return nil
}

func enum[T ~string](q *query, name string, all []T) T {
	raw := q.str(name)
	if q.err != nil {
		return ""
	}
	v, err := domain.ParseEnum(name, raw, all)
	if err != nil {
		q.err = err
	}
	return v
}

func pathID(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, domain.Invalid("id", "%v", err)
	}
	if id <= 0 {
		return 0, domain.Invalid("id", "must be positive")
	}
	return id, nil
}
