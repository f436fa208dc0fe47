package xerrors

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

type Code string

const (
	CodeInvalidBody      Code = "invalid_body"
	CodeInvalidSignature Code = "invalid_signature"
	CodeConfig           Code = "config_error"
	CodeUpstream         Code = "upstream_error"
	CodeInternalFault    Code = "internal_fault"
	CodeValidation       Code = "validation_error"
	CodeRateLimited      Code = "rate_limited"
	CodeUnavailable      Code = "unavailable"
)

type Error struct {
	StatusCode int
	Code       Code
	Message    string
	Cause      error
	RateLimit  *RateLimitInfo
	Validation *ValidationInfo
}

type RateLimitInfo struct {
	RetryAfter time.Duration
	Reason     string
}

type ValidationInfo struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func BadRequest(opts ...Option) *Error         { return newErr(http.StatusBadRequest, opts) }
func NotFound(opts ...Option) *Error           { return newErr(http.StatusNotFound, opts) }
func Internal(opts ...Option) *Error           { return newErr(http.StatusInternalServerError, opts) }
func ServiceUnavailable(opts ...Option) *Error { return newErr(http.StatusServiceUnavailable, opts) }
func TooManyRequests(opts ...Option) *Error {
	return newErr(http.StatusTooManyRequests, append([]Option{WithCode(CodeRateLimited)}, opts...))
}

// Validation reports caller errors on individual request fields.
func Validation(fields map[string]string, opts ...Option) *Error {
	e := newErr(http.StatusBadRequest, append([]Option{WithCode(CodeValidation), WithMessage("invalid request")}, opts...))
	e.Validation = &ValidationInfo{Fields: fields}
	return e
}

func InvalidBody(opts ...Option) *Error {
	return BadRequest(append([]Option{WithCode(CodeInvalidBody), WithMessage("invalid JSON body")}, opts...)...)
}

func InvalidSignature(opts ...Option) *Error {
	return BadRequest(append([]Option{WithCode(CodeInvalidSignature), WithMessage("invalid signature")}, opts...)...)
}

func Config(opts ...Option) *Error {
	return BadRequest(append([]Option{WithCode(CodeConfig), WithMessage("service is not configured")}, opts...)...)
}

func Upstream(opts ...Option) *Error {
	return Internal(append([]Option{WithCode(CodeUpstream), WithMessage("upstream request failed")}, opts...)...)
}

func InternalFault(opts ...Option) *Error {
	return Internal(append([]Option{WithCode(CodeInternalFault), WithMessage("internal server error")}, opts...)...)
}

func newErr(status int, opts []Option) *Error {
	e := &Error{StatusCode: status, Message: strings.ToLower(http.StatusText(status))}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Option func(*Error)

func WithCode(code Code) Option     { return func(e *Error) { e.Code = code } }
func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithCause(err error) Option    { return func(e *Error) { e.Cause = err } }
func WithRetryAfter(d time.Duration) Option {
	return func(e *Error) {
		if e.RateLimit == nil {
			e.RateLimit = &RateLimitInfo{}
		}
		e.RateLimit.RetryAfter = d
	}
}

func WithReason(reason string) Option {
	return func(e *Error) {
		if e.RateLimit == nil {
			e.RateLimit = &RateLimitInfo{}
		}
		e.RateLimit.Reason = reason
	}
}

func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
