package payment

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const userReferencePrefix = "USER_"

// UserReference embeds the user id into the merchant reference as
// USER_{userID}_{reference}. An empty user id leaves the reference as is.
func UserReference(reference, userID string) string {
	if userID == "" {
		return reference
	}
	return userReferencePrefix + userID + "_" + reference
}

// Signature is the processor's integrity hash:
// hex(SHA256(reference + amount + currency + secret)).
// The concatenation order is fixed by the processor.
func Signature(userReference, amount, currency, secret string) string {
	var b strings.Builder
	b.Grow(len(userReference) + len(amount) + len(currency) + len(secret))
	b.WriteString(userReference)
	b.WriteString(amount)
	b.WriteString(currency)
	b.WriteString(secret)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Sign is the pure form of Signer.Sign.
func Sign(req Request, secret string) (Payload, error) {
	if req.Reference == "" {
		return Payload{}, ErrMissingReference
	}
	if secret == "" {
		return Payload{}, ErrMissingSecret
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	var userID string
	if req.UserID.Truthy() {
		userID = req.UserID.Text()
	}
	ref := UserReference(req.Reference, userID)

	amount := req.Amount.normalized()
	return Payload{
		Amount:      amount,
		Reference:   ref,
		Description: req.Description,
		Currency:    currency,
		Signature:   Signature(ref, amount.Text(), currency, secret),
		OrderID:     ref,
	}, nil
}
