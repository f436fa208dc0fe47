package xerrors

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/garrettladley/boldrelay/internal/xhttp"
	"github.com/garrettladley/boldrelay/internal/xslog"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Code   Code              `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := As(err)
	if appErr == nil {
		appErr = InternalFault(WithCause(err))
	}

	logError(ctx, appErr)

	if appErr.RateLimit != nil {
		if appErr.RateLimit.RetryAfter > 0 {
			xhttp.SetHeaderRetryAfter(w, appErr.RateLimit.RetryAfter)
		}
		if appErr.RateLimit.Reason != "" {
			w.Header().Set(xhttp.XRateLimitReason, appErr.RateLimit.Reason)
		}
	}

	resp := errorResponse{Error: appErr.Message, Code: appErr.Code}
	if appErr.Validation != nil {
		resp.Fields = appErr.Validation.Fields
	}

	xhttp.WriteJSON(w, appErr.StatusCode, resp)
}

func logError(ctx context.Context, err *Error) {
	logger := xslog.FromContext(ctx)
	attrs := []any{
		xslog.HTTPStatus(err.StatusCode),
		slog.String("message", err.Message),
	}
	if err.Code != "" {
		attrs = append(attrs, slog.String("code", string(err.Code)))
	}
	if err.Cause != nil {
		attrs = append(attrs, xslog.Error(err.Cause))
	}
	if err.RateLimit != nil {
		attrs = append(attrs, slog.Any("rate_limit", err.RateLimit))
	}
	if err.Validation != nil {
		attrs = append(attrs, slog.Any("validation", err.Validation.Fields))
	}

	switch err.StatusCode / 100 {
	case 5:
		logger.ErrorContext(ctx, "server error", attrs...)
	case 4:
		logger.WarnContext(ctx, "client error", attrs...)
	default:
		logger.InfoContext(ctx, "error response", attrs...)
	}
}
