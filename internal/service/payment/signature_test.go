package payment

import (
	"errors"
	"strings"
	"testing"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestUserReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		reference string
		userID    string
		want      string
	}{
		{
			name:      "no user id",
			reference: "order-99",
			want:      "order-99",
		},
		{
			name:      "numeric user id",
			reference: "order-99",
			userID:    "42",
			want:      "USER_42_order-99",
		},
		{
			name:      "reference containing underscores",
			reference: "order_99_retry",
			userID:    "abc",
			want:      "USER_abc_order_99_retry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := UserReference(tt.reference, tt.userID); got != tt.want {
				t.Errorf("UserReference(%q, %q) = %q, want %q", tt.reference, tt.userID, got, tt.want)
			}
		})
	}
}

func TestSignature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		reference string
		amount    string
		currency  string
		secret    string
		want      string
	}{
		{
			name:      "plain reference",
			reference: "order-1",
			amount:    "10000",
			currency:  "COP",
			secret:    "secret",
			want:      "3df809af510eb61840688a078dc6a6e410d351ea42d7829fb9d763367f052b3a",
		},
		{
			name:      "user reference with decimal amount",
			reference: "USER_42_order-99",
			amount:    "50000.50",
			currency:  "USD",
			secret:    "top-secret",
			want:      "01cbb910ef14808863b18085d17f7d8f374800bf2a3f76cb9e69f725eec6e0dd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Signature(tt.reference, tt.amount, tt.currency, tt.secret)
			if got != tt.want {
				t.Errorf("Signature() = %q, want %q", got, tt.want)
			}
			if got != strings.ToLower(got) {
				t.Errorf("Signature() = %q, want lowercase hex", got)
			}
		})
	}
}

func TestSignDeterministic(t *testing.T) {
	t.Parallel()

	req := Request{
		Amount:      NumberLiteral("25000"),
		Reference:   "order-7",
		Description: "Plan mensual",
	}

	first, err := Sign(req, "secret")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	for range 5 {
		again, err := Sign(req, "secret")
		if err != nil {
			t.Fatalf("Sign() error = %v", err)
		}
		if diff := cmp.Diff(first, again, cmp.AllowUnexported(Literal{})); diff != "" {
			t.Fatalf("Sign() not deterministic (-first +again):\n%s", diff)
		}
	}

	other, err := Sign(req, "other-secret")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if other.Signature == first.Signature {
		t.Error("different secrets produced the same signature")
	}
}

func TestSign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     Request
		secret  string
		want    Payload
		wantErr error
	}{
		{
			name: "defaults currency",
			req: Request{
				Amount:      NumberLiteral("10000"),
				Reference:   "order-1",
				Description: "Camiseta",
			},
			secret: "secret",
			want: Payload{
				Amount:      NumberLiteral("10000"),
				Reference:   "order-1",
				Description: "Camiseta",
				Currency:    "COP",
				Signature:   "3df809af510eb61840688a078dc6a6e410d351ea42d7829fb9d763367f052b3a",
				OrderID:     "order-1",
			},
		},
		{
			name: "user reference echoed as order id",
			req: Request{
				Amount:    StringLiteral("50000.50"),
				Reference: "order-99",
				Currency:  "USD",
				UserID:    NumberLiteral("42"),
			},
			secret: "top-secret",
			want: Payload{
				Amount:    StringLiteral("50000.50"),
				Reference: "USER_42_order-99",
				Currency:  "USD",
				Signature: "01cbb910ef14808863b18085d17f7d8f374800bf2a3f76cb9e69f725eec6e0dd",
				OrderID:   "USER_42_order-99",
			},
		},
		{
			name: "numeric amount signed in shortest form",
			req: Request{
				Amount:    NumberLiteral("10000.50"),
				Reference: "order-1",
			},
			secret: "secret",
			want: Payload{
				Amount:    NumberLiteral("10000.5"),
				Reference: "order-1",
				Currency:  "COP",
				Signature: "ce582591a8fb2168d076d707e28361b47b1490c81a6c9d6366076b881334e3bc",
				OrderID:   "order-1",
			},
		},
		{
			name: "numeric zero user id is absent",
			req: Request{
				Amount:    NumberLiteral("10000"),
				Reference: "order-1",
				UserID:    NumberLiteral("0"),
			},
			secret: "secret",
			want: Payload{
				Amount:    NumberLiteral("10000"),
				Reference: "order-1",
				Currency:  "COP",
				Signature: "3df809af510eb61840688a078dc6a6e410d351ea42d7829fb9d763367f052b3a",
				OrderID:   "order-1",
			},
		},
		{
			name: "string zero user id is kept",
			req: Request{
				Amount:    NumberLiteral("10000"),
				Reference: "order-1",
				UserID:    StringLiteral("0"),
			},
			secret: "secret",
			want: Payload{
				Amount:    NumberLiteral("10000"),
				Reference: "USER_0_order-1",
				Currency:  "COP",
				Signature: "d9d9be546a5de4127fb1258f60171da9941668399cff511457e7a6e8d87f92a5",
				OrderID:   "USER_0_order-1",
			},
		},
		{
			name:    "missing reference",
			req:     Request{Amount: NumberLiteral("1")},
			secret:  "secret",
			wantErr: ErrMissingReference,
		},
		{
			name:    "missing secret",
			req:     Request{Amount: NumberLiteral("1"), Reference: "order-1"},
			wantErr: ErrMissingSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Sign(tt.req, tt.secret)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Sign() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(Literal{})); diff != "" {
				t.Errorf("Sign() mismatch (-want +got):\n%s", diff)
			}
			if tt.req.UserID.Truthy() && !strings.HasPrefix(got.Reference, "USER_"+tt.req.UserID.String()+"_") {
				t.Errorf("reference %q does not start with the user prefix", got.Reference)
			}
		})
	}
}

func TestRequestDecoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantAmount string
		wantUserID string
		wantEcho   string
		wantErr    bool
	}{
		{
			name:       "numeric amount keeps literal text",
			body:       `{"amount":10000.50,"reference":"r"}`,
			wantAmount: "10000.50",
			wantEcho:   `10000.50`,
		},
		{
			name:       "string amount",
			body:       `{"amount":"10000","reference":"r","userId":"7"}`,
			wantAmount: "10000",
			wantUserID: "7",
			wantEcho:   `"10000"`,
		},
		{
			name:       "numeric user id",
			body:       `{"amount":1,"reference":"r","userId":42}`,
			wantAmount: "1",
			wantUserID: "42",
			wantEcho:   `1`,
		},
		{
			name:     "null user id",
			body:     `{"amount":null,"reference":"r","userId":null}`,
			wantEcho: `null`,
		},
		{
			name:    "leading zero amount rejected",
			body:    `{"amount":007,"reference":"r"}`,
			wantErr: true,
		},
		{
			name:    "leading zero user id rejected",
			body:    `{"amount":1,"reference":"r","userId":-01}`,
			wantErr: true,
		},
		{
			name:    "boolean amount rejected",
			body:    `{"amount":true,"reference":"r"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req Request
			err := go_json.Unmarshal([]byte(tt.body), &req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if req.Amount.String() != tt.wantAmount {
				t.Errorf("amount = %q, want %q", req.Amount.String(), tt.wantAmount)
			}
			if req.UserID.String() != tt.wantUserID {
				t.Errorf("userId = %q, want %q", req.UserID.String(), tt.wantUserID)
			}

			echo, err := go_json.Marshal(req.Amount)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(echo) != tt.wantEcho {
				t.Errorf("amount echo = %s, want %s", echo, tt.wantEcho)
			}
		})
	}
}

func TestLiteralText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		lit        Literal
		wantText   string
		wantTruthy bool
		wantJSON   string
	}{
		{name: "integer", lit: NumberLiteral("10000"), wantText: "10000", wantTruthy: true, wantJSON: `10000`},
		{name: "trailing zero fraction", lit: NumberLiteral("10000.50"), wantText: "10000.5", wantTruthy: true, wantJSON: `10000.50`},
		{name: "exponent", lit: NumberLiteral("1E3"), wantText: "1000", wantTruthy: true, wantJSON: `1E3`},
		{name: "numeric zero", lit: NumberLiteral("0.0"), wantText: "0", wantJSON: `0.0`},
		{name: "string keeps text", lit: StringLiteral("10000.50"), wantText: "10000.50", wantTruthy: true, wantJSON: `"10000.50"`},
		{name: "string zero", lit: StringLiteral("0"), wantText: "0", wantTruthy: true, wantJSON: `"0"`},
		{name: "empty string", lit: StringLiteral(""), wantJSON: `null`},
		{name: "null", lit: Literal{}, wantJSON: `null`},
		{name: "invalid number text quoted", lit: NumberLiteral("007"), wantText: "007", wantTruthy: true, wantJSON: `"007"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.lit.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
			if got := tt.lit.Truthy(); got != tt.wantTruthy {
				t.Errorf("Truthy() = %v, want %v", got, tt.wantTruthy)
			}
			got, err := go_json.Marshal(tt.lit)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("Marshal() = %s, want %s", got, tt.wantJSON)
			}
		})
	}
}
