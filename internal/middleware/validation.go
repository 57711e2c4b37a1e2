package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// Validator instance shared by the field predicates
var validate *validator.Validate

func init() {
	validate = validator.New()
}

const (
	locationBody   = "body"
	locationParams = "params"
)

// FieldError describes a single failed validation rule on one request field.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// Rule is one declarative check on a body field or URL parameter. Rules
// attached to a route are evaluated in declaration order and never
// short-circuit: each failing rule contributes its own error.
type Rule struct {
	Path     string
	Location string
	Msg      string
	Check    func(value any, present bool) bool
}

// RequiredField fails when the body field is missing, null, or an empty string.
func RequiredField(path, msg string) Rule {
	return Rule{
		Path:     path,
		Location: locationBody,
		Msg:      msg,
		Check: func(value any, present bool) bool {
			if !present || value == nil {
				return false
			}
			return cast.ToString(value) != ""
		},
	}
}

// NumericField fails when the body field's value cannot be read as a number.
func NumericField(path, msg string) Rule {
	return Rule{
		Path:     path,
		Location: locationBody,
		Msg:      msg,
		Check: func(value any, present bool) bool {
			if !present || value == nil {
				return false
			}
			return validate.Var(cast.ToString(value), "numeric") == nil
		},
	}
}

// PositiveField fails when the body field does not convert to a number
// strictly greater than zero. Independent of NumericField: a non-numeric
// value fails both.
func PositiveField(path, msg string) Rule {
	return Rule{
		Path:     path,
		Location: locationBody,
		Msg:      msg,
		Check: func(value any, present bool) bool {
			number, err := cast.ToFloat64E(value)
			return err == nil && number > 0
		},
	}
}

// BooleanField fails when the body field cannot be read as a boolean.
func BooleanField(path, msg string) Rule {
	return Rule{
		Path:     path,
		Location: locationBody,
		Msg:      msg,
		Check: func(value any, present bool) bool {
			if !present || value == nil {
				return false
			}
			return validate.Var(cast.ToString(value), "boolean") == nil
		},
	}
}

// IntParam fails when the named URL parameter is not an integer string.
func IntParam(name, msg string) Rule {
	return Rule{
		Path:     name,
		Location: locationParams,
		Msg:      msg,
		Check: func(value any, present bool) bool {
			_, err := strconv.ParseInt(cast.ToString(value), 10, 64)
			return err == nil
		},
	}
}

type contextKey string

const (
	parsedBodyKey  contextKey = "parsedBody"
	fieldErrorsKey contextKey = "fieldErrors"
)

// Validate evaluates the given rules against the request and stores the
// parsed body and any accumulated field errors in the request context. The
// request body is restored so the handler can decode it again. Evaluation
// alone never terminates the request; that is HandleInputErrors' job.
func Validate(rules ...Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := map[string]any{}
			if r.Body != nil {
				raw, err := io.ReadAll(r.Body)
				if err == nil {
					// An unparseable body validates like an empty one.
					_ = json.Unmarshal(raw, &body)
					r.Body = io.NopCloser(bytes.NewReader(raw))
				}
			}

			fieldErrors := []FieldError{}
			for _, rule := range rules {
				var value any
				var present bool

				switch rule.Location {
				case locationParams:
					value = chi.URLParam(r, rule.Path)
					present = true
				default:
					value, present = body[rule.Path]
				}

				if rule.Check(value, present) {
					continue
				}

				fieldErrors = append(fieldErrors, FieldError{
					Type:     "field",
					Value:    value,
					Msg:      rule.Msg,
					Path:     rule.Path,
					Location: rule.Location,
				})
			}

			ctx := context.WithValue(r.Context(), parsedBodyKey, body)
			ctx = context.WithValue(ctx, fieldErrorsKey, fieldErrors)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HandleInputErrors terminates the request with 400 and the accumulated field
// errors, or passes control through untouched when there are none. The
// downstream handler never runs on a non-empty error list.
func HandleInputErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fieldErrors, ok := r.Context().Value(fieldErrorsKey).([]FieldError); ok && len(fieldErrors) > 0 {
			RespondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: fieldErrors})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ParsedBody returns the JSON body parsed by Validate, or an empty map when
// no Validate middleware ran on this request.
func ParsedBody(ctx context.Context) map[string]any {
	if body, ok := ctx.Value(parsedBodyKey).(map[string]any); ok {
		return body
	}
	return map[string]any{}
}
