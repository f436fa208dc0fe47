package webhook

import (
	"context"
	"fmt"

	"github.com/garrettladley/boldrelay/internal/xslog"
)

const ackMessage = "Webhook processed successfully"

type Processor struct {
	secret   string
	mode     SigningMode
	handlers Handlers
}

var _ Service = (*Processor)(nil)

func NewProcessor(secret string, mode SigningMode, handlers Handlers) *Processor {
	if mode == "" {
		mode = SigningModeReencoded
	}
	if handlers == nil {
		handlers = LogHandlers{}
	}
	return &Processor{
		secret:   secret,
		mode:     mode,
		handlers: handlers,
	}
}

func (p *Processor) ProcessWebhook(ctx context.Context, req ProcessRequest) (Ack, error) {
	event, err := ParseEvent(req.Body)
	if err != nil {
		return Ack{}, err
	}

	if p.secret == "" {
		return Ack{}, ErrMissingSecret
	}

	if req.Signature == "" {
		return Ack{}, ErrMissingSignature
	}

	expected, err := SignBody(req.Body, p.secret, p.mode)
	if err != nil {
		return Ack{}, err
	}
	if !signaturesEqual(expected, req.Signature) {
		return Ack{}, ErrInvalidSignature
	}

	userID, hasUser := ExtractUserID(event.Data.Metadata.Reference)

	ctx = xslog.WithAttrs(ctx,
		xslog.EventID(event.ID),
		xslog.EventType(string(event.Type)),
		xslog.PaymentID(event.Data.PaymentID),
	)

	if err := p.dispatch(ctx, userID, event); err != nil {
		return Ack{}, err
	}

	ack := Ack{
		Message:   ackMessage,
		PaymentID: event.Data.PaymentID,
		Type:      event.Type,
	}
	if hasUser {
		ack.UserID = &userID
	}
	return ack, nil
}

func (p *Processor) dispatch(ctx context.Context, userID string, event Event) (err error) {
	logger := xslog.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "webhook handler panicked", xslog.ErrorGroupWithStack(r))
			err = fmt.Errorf("%w: %v", ErrInternalFault, r)
		}
	}()

	switch event.Type {
	case EventSaleApproved:
		p.handlers.SaleApproved(ctx, userID, event)
	case EventSaleRejected:
		p.handlers.SaleRejected(ctx, userID, event)
	case EventVoidApproved:
		p.handlers.VoidApproved(ctx, userID, event)
	case EventVoidRejected:
		p.handlers.VoidRejected(ctx, userID, event)
	default:
		logger.WarnContext(ctx, "unhandled webhook event type")
		return nil
	}

	logger.InfoContext(ctx, "processed webhook", xslog.UserID(userID))
	return nil
}
