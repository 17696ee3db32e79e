package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/janisto/profile-api/internal/api"
	appmiddleware "github.com/janisto/profile-api/internal/middleware"
)

const (
	msgNotFound          = "Not Found"
	msgMethodNotAllowed  = "Method Not Allowed"
	msgInternalServerErr = "Internal Server Error"

	// validationFailed is the message Huma attaches to request-shape
	// failures. Paired with a 400 status it marks a body that could not be
	// parsed at all.
	validationFailed = "validation failed"

	// bodyRequired is the message Huma attaches to a 400 when a required
	// request body is missing entirely. It arrives without a detail list.
	bodyRequired = "request body is required"
)

var installOnce sync.Once

// Install makes Huma render every error response in the canonical
// {"detail": ...} shape: a plain string for simple failures, an ordered list
// of field errors for validation failures. Handlers and Huma internals both
// funnel through huma.NewError, so overriding it here normalizes transport
// and business errors alike.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return newStatusError(context.Background(), status, msg, errs)
		}

		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			goCtx := context.Background()
			if hctx != nil {
				goCtx = hctx.Context()
			}
			return newStatusError(goCtx, status, msg, errs)
		}
	})
}

// Error returns a status error carrying the canonical body, for callers
// outside Huma's operation pipeline.
func Error(ctx context.Context, status int, msg string, errs ...error) huma.StatusError {
	return newStatusError(ctx, status, msg, errs)
}

// WriteJSON serializes body directly to the ResponseWriter.
func WriteJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(body)
}

// WriteError renders the canonical error body for handlers running outside
// Huma's operation pipeline, such as router fallbacks.
func WriteError(w http.ResponseWriter, ctx context.Context, status int, msg string, errs ...error) error {
	se := newStatusError(ctx, status, msg, errs)
	e, ok := se.(*statusError)
	if !ok {
		return se
	}
	return WriteJSON(w, e.GetStatus(), e.ErrorBody)
}

// NotFoundHandler emits the canonical 404 body for paths no route claims.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := WriteError(w, r.Context(), http.StatusNotFound, msgNotFound); err != nil {
			appmiddleware.LogError(r.Context(), "failed to render not found", err)
		}
	}
}

// MethodNotAllowedHandler emits the canonical 405 body with an Allow header
// listing the methods the matched path does support.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		if err := WriteError(w, r.Context(), http.StatusMethodNotAllowed, msgMethodNotAllowed); err != nil {
			appmiddleware.LogError(r.Context(), "failed to render method not allowed", err)
		}
	}
}

// Recoverer converts panics into canonical 500 responses.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					var err error
					switch v := rec.(type) {
					case error:
						err = v
					default:
						err = fmt.Errorf("%v", v)
					}
					err = fmt.Errorf("%w\n%s", err, debug.Stack())
					if writeErr := WriteError(w, r.Context(), http.StatusInternalServerError, msgInternalServerErr, err); writeErr != nil {
						appmiddleware.LogError(r.Context(), "failed to render internal error", writeErr)
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// allowedMethods inspects chi's routing context to discover which methods the
// requested path answers to.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}

	routePath := rctx.RoutePath
	if routePath == "" {
		if r.URL.RawPath != "" {
			routePath = r.URL.RawPath
		} else {
			routePath = r.URL.Path
		}
		if routePath == "" {
			routePath = "/"
		}
	}

	methods := []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowed := make([]string, 0, len(methods))
	for _, method := range methods {
		tctx := chi.NewRouteContext()
		if rctx.Routes.Match(tctx, method, routePath) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

type statusError struct {
	api.ErrorBody
	status int
	msg    string
}

func (e *statusError) Error() string {
	return e.msg
}

func (e *statusError) GetStatus() int {
	return e.status
}

// newStatusError normalizes a status, message and error list into the
// canonical error body and logs it with a severity matching the status.
func newStatusError(ctx context.Context, status int, msg string, errs []error) huma.StatusError {
	fields := fieldErrors(errs)

	// Huma reports a body it could not parse at all as a 400. The contract
	// treats every body-shape problem as a validation failure, so promote it.
	if status == http.StatusBadRequest && msg == validationFailed {
		status = http.StatusUnprocessableEntity
	}

	// A missing required body is likewise a body-shape problem. Promote it
	// and shape it as a whole-body type error.
	if status == http.StatusBadRequest && msg == bodyRequired {
		status = http.StatusUnprocessableEntity
		if len(fields) == 0 {
			fields = []*api.FieldError{api.NewFieldError([]string{"body"}, msg, api.KindTypeError)}
		}
	}

	message := messageOrDefault(status, msg)

	var detail any
	if status == http.StatusUnprocessableEntity {
		// A 422 always carries at least one field error.
		if len(fields) == 0 {
			fields = []*api.FieldError{api.NewFieldError([]string{"body"}, message, api.KindValueError)}
		}
		detail = fields
	} else {
		detail = message
	}

	logFields := []zap.Field{
		zap.Int("status", status),
		zap.String("message", message),
	}
	if len(fields) > 0 {
		logFields = append(logFields, zap.Any("detail", fields))
	}
	logWithStatus(ctx, status, message, joinErrors(errs), logFields...)

	return &statusError{
		ErrorBody: api.ErrorBody{Detail: detail},
		status:    status,
		msg:       message,
	}
}

// fieldErrors flattens an error list into field errors, preserving order.
// Business violations arrive as *api.FieldError and pass through unchanged;
// transport-level details from Huma are reshaped into the same form.
func fieldErrors(errs []error) []*api.FieldError {
	if len(errs) == 0 {
		return nil
	}
	fields := make([]*api.FieldError, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		var fe *api.FieldError
		if errors.As(err, &fe) {
			fields = append(fields, fe)
			continue
		}
		if detailer, ok := err.(huma.ErrorDetailer); ok {
			if d := detailer.ErrorDetail(); d != nil {
				fields = append(fields, api.NewFieldError(splitLocation(d.Location), d.Message, api.KindTypeError))
				continue
			}
		}
		fields = append(fields, api.NewFieldError([]string{"body"}, err.Error(), api.KindValueError))
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// splitLocation turns Huma's dotted location string into a path list.
// Empty locations describe the whole document.
func splitLocation(loc string) []string {
	if loc == "" {
		return []string{"body"}
	}
	return strings.Split(loc, ".")
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}

func messageOrDefault(status int, msg string) string {
	if strings.TrimSpace(msg) != "" {
		return msg
	}
	if text := http.StatusText(status); strings.TrimSpace(text) != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func logWithStatus(ctx context.Context, status int, msg string, err error, fields ...zap.Field) {
	if ctx == nil {
		ctx = context.Background()
	}
	if msg == "" {
		msg = "request failed"
	}
	switch {
	case status >= 500:
		appmiddleware.LogError(ctx, msg, err, fields...)
	case status >= 400:
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		appmiddleware.LogWarn(ctx, msg, fields...)
	default:
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		appmiddleware.LogInfo(ctx, msg, fields...)
	}
}
