package handler

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/errors"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"google.golang.org/grpc/codes"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Response is the envelope shared by every endpoint.
type Response struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Code      string `json:"code"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess wraps data in a success envelope.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Response{
		Status:    statusSuccess,
		Message:   message,
		Code:      codes.OK.String(),
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	})
}

// WriteError maps err onto an HTTP status and writes an error envelope.
func WriteError(w http.ResponseWriter, err error) {
	status, code := statusOf(err)

	resp := Response{
		Status:    statusError,
		Message:   messageOf(err, code),
		Code:      code.String(),
		Timestamp: time.Now().UnixMilli(),
	}

	var base *errors.BaseError
	if stderrors.As(err, &base) {
		fields := make([]FieldError, 0, len(base.GetDetails()))
		for _, d := range base.GetDetails() {
			fields = append(fields, FieldError{Field: d.Field, Message: d.Message})
		}
		resp.Data = fields
	}

	WriteJSON(w, status, resp)
}

func statusOf(err error) (int, codes.Code) {
	var base *errors.BaseError
	if stderrors.As(err, &base) && base.IsAnyCodeEqual(v1.CodeValidation) {
		return http.StatusBadRequest, codes.InvalidArgument
	}

	switch errors.CodeOf(err) {
	case v1.CodeBookNotFound, v1.CodeOrderNotFound:
		return http.StatusNotFound, codes.NotFound
	case v1.CodeDuplicateOrderID, v1.CodeDuplicateIdempotentRequest:
		return http.StatusConflict, codes.AlreadyExists
	case v1.CodeUnsatisfiableLiquidity:
		return http.StatusUnprocessableEntity, codes.FailedPrecondition
	case v1.CodeMissingIdempotencyKey, v1.CodeValidation:
		return http.StatusBadRequest, codes.InvalidArgument
	case v1.CodeStoreUnavailable:
		return http.StatusServiceUnavailable, codes.Unavailable
	default:
		return http.StatusInternalServerError, codes.Internal
	}
}

func messageOf(err error, code codes.Code) string {
	if code == codes.Internal {
		return "Internal server error"
	}
	var details *errors.ErrorDetails
	if stderrors.As(err, &details) {
		return details.Message
	}
	return err.Error()
}

// ParseJSON decodes the request body as JSON into v, rejecting unknown fields.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return malformedBody()
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return malformedBody()
	}

	return nil
}

func malformedBody() error {
	return errors.NewErrorDetails(
		fmt.Sprintf("Request body must be valid JSON with Content-Type: %s", "application/json"),
		v1.CodeValidation,
		"body",
	)
}
