package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/garrettladley/boldrelay/internal/version"
	"github.com/garrettladley/boldrelay/internal/xhttp"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func ErrorAny(err any) slog.Attr {
	return slog.Any(keyError, err)
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func IP(ip string) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, ip)
}

func RequestIP(r *http.Request) slog.Attr {
	return IP(xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func Addr(addr string) slog.Attr {
	const addrKey = "addr"
	return slog.String(addrKey, addr)
}

func Env(env string) slog.Attr {
	const envKey = "env"
	return slog.String(envKey, env)
}

func PaymentID(id string) slog.Attr {
	const paymentIDKey = "payment_id"
	return slog.String(paymentIDKey, id)
}

func EventID(id string) slog.Attr {
	const eventIDKey = "event_id"
	return slog.String(eventIDKey, id)
}

func EventType(t string) slog.Attr {
	const eventTypeKey = "event_type"
	return slog.String(eventTypeKey, t)
}

// UserID logs an absent id as an empty string.
func UserID(id string) slog.Attr {
	const userIDKey = "user_id"
	return slog.String(userIDKey, id)
}

func Reference(reference string) slog.Attr {
	const referenceKey = "reference"
	return slog.String(referenceKey, reference)
}

func Amount(amount string) slog.Attr {
	const amountKey = "amount"
	return slog.String(amountKey, amount)
}

func Currency(currency string) slog.Attr {
	const currencyKey = "currency"
	return slog.String(currencyKey, currency)
}

func SigningMode(mode string) slog.Attr {
	const signingModeKey = "signing_mode"
	return slog.String(signingModeKey, mode)
}

func UpstreamStatus(status int) slog.Attr {
	const upstreamStatusKey = "upstream_status"
	return slog.Int(upstreamStatusKey, status)
}

func ExternalReference(isExternal bool) slog.Attr {
	const externalReferenceKey = "is_external_reference"
	return slog.Bool(externalReferenceKey, isExternal)
}
