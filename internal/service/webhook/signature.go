package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/garrettladley/boldrelay/internal/xjson"
)

// CanonicalBody returns the bytes the processor signs under mode.
// In reencoded mode the body is parsed and written back the way
// JSON.stringify(JSON.parse(body)) does.
func CanonicalBody(body []byte, mode SigningMode) ([]byte, error) {
	if mode == SigningModeRaw {
		return body, nil
	}
	canonical, err := xjson.Reencode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return canonical, nil
}

// SignBody computes hex(HMAC-SHA256(secret, base64(canonical body))), the
// value the processor sends in the x-bold-signature header.
func SignBody(body []byte, secret string, mode SigningMode) (string, error) {
	canonical, err := CanonicalBody(body, mode)
	if err != nil {
		return "", err
	}
	return sign(canonical, secret), nil
}

func sign(canonical []byte, secret string) string {
	encoded := base64.StdEncoding.EncodeToString(canonical)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}

// signaturesEqual compares fixed-length digests of both values so neither
// content nor length of the received signature shortens the comparison.
func signaturesEqual(expected, received string) bool {
	e := sha256.Sum256([]byte(expected))
	r := sha256.Sum256([]byte(received))
	return hmac.Equal(e[:], r[:])
}
