package webhook

import (
	"fmt"
	"strings"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/boldrelay/internal/xjson"
)

type EventType string

const (
	EventSaleApproved EventType = "SALE_APPROVED"
	EventSaleRejected EventType = "SALE_REJECTED"
	EventVoidApproved EventType = "VOID_APPROVED"
	EventVoidRejected EventType = "VOID_REJECTED"
)

func (t EventType) Known() bool {
	switch t {
	case EventSaleApproved, EventSaleRejected, EventVoidApproved, EventVoidRejected:
		return true
	}
	return false
}

type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Subject     string    `json:"subject"`
	Source      string    `json:"source"`
	SpecVersion string    `json:"spec_version"`
	Data        EventData `json:"data"`
}

type EventData struct {
	PaymentID     string        `json:"payment_id"`
	MerchantID    string        `json:"merchant_id"`
	CreatedAt     string        `json:"created_at"`
	PaymentMethod string        `json:"payment_method"`
	Amount        EventAmount   `json:"amount"`
	Metadata      EventMetadata `json:"metadata"`
}

type EventAmount struct {
	Currency string         `json:"currency"`
	Total    go_json.Number `json:"total"`
}

type EventMetadata struct {
	Reference string `json:"reference"`
}

// ParseEvent decodes a raw webhook body.
// Returns ErrInvalidBody when the body is not a JSON object. Fields are read
// leniently: numbers and booleans become their string form and values of any
// other type read as empty.
func ParseEvent(body []byte) (Event, error) {
	root, err := xjson.Parse(body)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if root.Kind != xjson.KindObject {
		return Event{}, fmt.Errorf("%w: expected a JSON object", ErrInvalidBody)
	}

	data := root.Lookup("data")
	return Event{
		ID:          root.Lookup("id").Scalar(),
		Type:        EventType(root.Lookup("type").Scalar()),
		Subject:     root.Lookup("subject").Scalar(),
		Source:      root.Lookup("source").Scalar(),
		SpecVersion: root.Lookup("spec_version").Scalar(),
		Data: EventData{
			PaymentID:     data.Lookup("payment_id").Scalar(),
			MerchantID:    data.Lookup("merchant_id").Scalar(),
			CreatedAt:     data.Lookup("created_at").Scalar(),
			PaymentMethod: data.Lookup("payment_method").Scalar(),
			Amount: EventAmount{
				Currency: data.Lookup("amount", "currency").Scalar(),
				Total:    go_json.Number(data.Lookup("amount", "total").Scalar()),
			},
			Metadata: EventMetadata{
				Reference: data.Lookup("metadata", "reference").Scalar(),
			},
		},
	}, nil
}

const userReferencePrefix = "USER_"

// ExtractUserID reads the user id out of a USER_{id}_{rest} reference.
// Any other shape yields ok == false.
func ExtractUserID(reference string) (string, bool) {
	if !strings.HasPrefix(reference, userReferencePrefix) {
		return "", false
	}
	parts := strings.SplitN(reference, "_", 3)
	if len(parts) != 3 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
