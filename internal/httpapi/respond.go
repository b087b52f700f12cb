package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"enquirycrm/internal/logger"
	apperrors "enquirycrm/pkg/errors"

	goahttp "goa.design/goa/v3/http"
	goamiddleware "goa.design/goa/v3/middleware"
	goa "goa.design/goa/v3/pkg"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

func statusOf(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeValidation, apperrors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeState, apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(goamiddleware.RequestIDKey).(string)
	return id
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	code := apperrors.CodeOf(err)
	status := statusOf(code)

	var se *goa.ServiceError
	if status == http.StatusInternalServerError {
		se = goa.Fault("internal server error")
		logger.For("HTTP").WithError(err).WithFields(map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": requestID(ctx),
		}).Error("Request failed")
	} else {
		se = goa.PermanentError(string(code), "%s", apperrors.MessageOf(err))
	}

	body := errorBody{Name: se.Name, ID: requestID(ctx), Message: se.Message}
	if body.ID == "" {
		body.ID = se.ID
	}
	_ = writeJSON(w, r, status, body)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) error {
	enc := goahttp.ResponseEncoder(r.Context(), w)
	w.WriteHeader(status)
	return enc.Encode(v)
}

func noContent(w http.ResponseWriter) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// decode reads a JSON body. Enum and validation errors raised while
// unmarshalling pass through unchanged.
func decode(r *http.Request, v any) error {
	err := goahttp.RequestDecoder(r).Decode(v)
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, io.EOF) {
		return apperrors.Validation("request body is required")
	}
	return apperrors.Validation("malformed request body: %v", err)
}
