package webhook

import (
	"context"

	"github.com/garrettladley/boldrelay/internal/xslog"
)

// Handlers receives verified events by type. userID is empty when the
// payment reference does not carry one.
type Handlers interface {
	SaleApproved(ctx context.Context, userID string, event Event)
	SaleRejected(ctx context.Context, userID string, event Event)
	VoidApproved(ctx context.Context, userID string, event Event)
	VoidRejected(ctx context.Context, userID string, event Event)
}

type HandlerFunc func(ctx context.Context, userID string, event Event)

// HandlerFuncs adapts individual functions to Handlers. Nil fields are no-ops,
// so the zero value discards every event.
type HandlerFuncs struct {
	OnSaleApproved HandlerFunc
	OnSaleRejected HandlerFunc
	OnVoidApproved HandlerFunc
	OnVoidRejected HandlerFunc
}

var _ Handlers = HandlerFuncs{}

func (h HandlerFuncs) SaleApproved(ctx context.Context, userID string, event Event) {
	call(h.OnSaleApproved, ctx, userID, event)
}

func (h HandlerFuncs) SaleRejected(ctx context.Context, userID string, event Event) {
	call(h.OnSaleRejected, ctx, userID, event)
}

func (h HandlerFuncs) VoidApproved(ctx context.Context, userID string, event Event) {
	call(h.OnVoidApproved, ctx, userID, event)
}

func (h HandlerFuncs) VoidRejected(ctx context.Context, userID string, event Event) {
	call(h.OnVoidRejected, ctx, userID, event)
}

func call(fn HandlerFunc, ctx context.Context, userID string, event Event) {
	if fn != nil {
		fn(ctx, userID, event)
	}
}

// LogHandlers records each event in the request log and does nothing else.
// Order fulfilment, refunds and customer emails hook in by replacing it.
type LogHandlers struct{}

var _ Handlers = LogHandlers{}

func (LogHandlers) SaleApproved(ctx context.Context, userID string, event Event) {
	xslog.FromContext(ctx).InfoContext(ctx, "payment approved", eventAttrs(userID, event)...)
}

func (LogHandlers) SaleRejected(ctx context.Context, userID string, event Event) {
	xslog.FromContext(ctx).WarnContext(ctx, "payment rejected", eventAttrs(userID, event)...)
}

func (LogHandlers) VoidApproved(ctx context.Context, userID string, event Event) {
	xslog.FromContext(ctx).InfoContext(ctx, "payment voided", eventAttrs(userID, event)...)
}

func (LogHandlers) VoidRejected(ctx context.Context, userID string, event Event) {
	xslog.FromContext(ctx).WarnContext(ctx, "payment void rejected", eventAttrs(userID, event)...)
}

func eventAttrs(userID string, event Event) []any {
	return []any{
		xslog.PaymentID(event.Data.PaymentID),
		xslog.UserID(userID),
		xslog.Amount(event.Data.Amount.Total.String()),
		xslog.Currency(event.Data.Amount.Currency),
		xslog.Reference(event.Data.Metadata.Reference),
	}
}
