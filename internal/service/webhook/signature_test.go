package webhook

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSignBody(t *testing.T) {
	t.Parallel()

	const want = "385b82e13094e7ec6bf6808a5fde231c241efbaa547ef6816670479d66c362de"

	tests := []struct {
		name    string
		body    string
		mode    SigningMode
		want    string
		wantErr error
	}{
		{
			name: "compact body",
			body: `{"id":"evt_1","type":"SALE_APPROVED"}`,
			mode: SigningModeReencoded,
			want: want,
		},
		{
			name: "whitespace removed before signing",
			body: "{\n  \"id\": \"evt_1\",\n  \"type\": \"SALE_APPROVED\"\n}\n",
			mode: SigningModeReencoded,
			want: want,
		},
		{
			name: "raw mode signs bytes as received",
			body: `{"id":"evt_1","type":"SALE_APPROVED"}`,
			mode: SigningModeRaw,
			want: want,
		},
		{
			name:    "invalid JSON in reencoded mode",
			body:    `{"id":`,
			mode:    SigningModeReencoded,
			wantErr: ErrInvalidBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SignBody([]byte(tt.body), "secret", tt.mode)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SignBody() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SignBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSignBodyRawModeKeepsWhitespace(t *testing.T) {
	t.Parallel()

	pretty := []byte("{ \"id\": \"evt_1\" }")

	raw, err := SignBody(pretty, "secret", SigningModeRaw)
	if err != nil {
		t.Fatalf("SignBody() error = %v", err)
	}
	reencoded, err := SignBody(pretty, "secret", SigningModeReencoded)
	if err != nil {
		t.Fatalf("SignBody() error = %v", err)
	}
	if raw == reencoded {
		t.Error("raw and reencoded signatures should differ for a non-compact body")
	}
}

func TestCanonicalBodyMatchesJSONStringify(t *testing.T) {
	t.Parallel()

	// Expected bodies were produced with JSON.stringify(JSON.parse(body)).
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "key order kept",
			body: `{ "type": "SALE_APPROVED", "id": "evt_1", "data": { "amount": { "total": 59900.00 } } }`,
			want: `{"type":"SALE_APPROVED","id":"evt_1","data":{"amount":{"total":59900}}}`,
		},
		{
			name: "escaped slash and unicode",
			body: `{"url":"https:\/\/bold.co\/pay","name":"Pe\u00f1a"}`,
			want: `{"url":"https://bold.co/pay","name":"Peña"}`,
		},
		{
			name: "integer keys first",
			body: `{"b":1,"2":"two","a":2,"1":"one","b":3}`,
			want: `{"1":"one","2":"two","b":3,"a":2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := CanonicalBody([]byte(tt.body), SigningModeReencoded)
			if err != nil {
				t.Fatalf("CanonicalBody() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("CanonicalBody() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSignBodyNormalizedValues(t *testing.T) {
	t.Parallel()

	// hex(HMAC-SHA256("secret", base64(JSON.stringify(JSON.parse(body)))))
	const want = "5f1d49730c7daf0efb6f2a888bafb505bad838cc396d7a83bf7f4c0f0daca60f"

	body := []byte(`{"data":{"payment_id":"pay_9","amount":{"total":59900.00}},"id":"evt_2","note":"Pe\u00f1a \/ ok","type":"SALE_APPROVED"}`)
	got, err := SignBody(body, "secret", SigningModeReencoded)
	if err != nil {
		t.Fatalf("SignBody() error = %v", err)
	}
	if got != want {
		t.Errorf("SignBody() = %s, want %s", got, want)
	}
}

func TestCanonicalBodyRejectsNonStandardJSON(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"total":007}`, `{"a":1 "b":2}`, `[1,]`} {
		if _, err := CanonicalBody([]byte(body), SigningModeReencoded); !errors.Is(err, ErrInvalidBody) {
			t.Errorf("CanonicalBody(%s) error = %v, want ErrInvalidBody", body, err)
		}
	}
}

func TestSignaturesEqual(t *testing.T) {
	t.Parallel()

	const sig = "385b82e13094e7ec6bf6808a5fde231c241efbaa547ef6816670479d66c362de"

	tests := []struct {
		name     string
		received string
		want     bool
	}{
		{name: "identical", received: sig, want: true},
		{name: "first byte flipped", received: "4" + sig[1:], want: false},
		{name: "last byte flipped", received: sig[:len(sig)-1] + "f", want: false},
		{name: "truncated", received: sig[:32], want: false},
		{name: "extended", received: sig + "00", want: false},
		{name: "upper case", received: "385B82E13094E7EC6BF6808A5FDE231C241EFBAA547EF6816670479D66C362DE", want: false},
		{name: "empty", received: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := signaturesEqual(sig, tt.received); got != tt.want {
				t.Errorf("signaturesEqual(%q) = %v, want %v", tt.received, got, tt.want)
			}
		})
	}
}
