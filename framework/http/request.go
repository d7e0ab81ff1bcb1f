package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Request wraps *http.Request with binding helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the JSON request body into v. Unknown fields are rejected.
func (req *Request) Bind(v any) error {
	dec := json.NewDecoder(req.raw.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// BindValidated binds the body into v and validates it against its
// `validate` struct tags. Returns (nil, nil) on success, or a non-nil
// field → messages map when validation fails.
func (req *Request) BindValidated(v any) (map[string][]string, error) {
	if err := req.Bind(v); err != nil {
		return nil, err
	}
	if err := validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil, err
		}
		bag := make(map[string][]string)
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				field := strings.ToLower(fe.Field())
				bag[field] = append(bag[field], "failed on rule: "+fe.Tag())
			}
		}
		return bag, nil
	}
	return nil, nil
}

// ── Convenience accessors ────────────────────────────────────────────────────

// Query returns a query-string value.
func (req *Request) Query(key string) string {
	return req.raw.URL.Query().Get(key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// BearerToken extracts the token from an Authorization: Bearer header.
func (req *Request) BearerToken() string {
	h := req.raw.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(h, prefix) {
		return strings.TrimPrefix(h, prefix)
	}
	return ""
}
