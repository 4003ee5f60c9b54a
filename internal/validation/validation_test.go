package validation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
)

func float(v float64) *float64 { return &v }

func TestValidateUUID(t *testing.T) {
	if err := ValidateUUID("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("Expected valid UUID, got %v", err)
	}
	if err := ValidateUUID("not-a-uuid"); !errors.Is(err, ErrInvalidUUID) {
		t.Errorf("Expected ErrInvalidUUID, got %v", err)
	}
}

func TestValidateTickers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{"normalizes and dedupes", " aapl,MSFT,,aapl ", []string{"AAPL", "MSFT"}, nil},
		{"index and fx symbols", "^GSPC,EURUSD=X,BRK.B,VWRL-AS", []string{"^GSPC", "EURUSD=X", "BRK.B", "VWRL-AS"}, nil},
		{"empty", " , ", nil, ErrEmptySlice},
		{"bad character", "AAPL;DROP", nil, ErrInvalidValue},
		{"too long", "ABCDEFGHIJKLMNOPQ", nil, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTickers(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidateCreateTransaction(t *testing.T) {
	tests := []struct {
		name   string
		req    request.CreateTransactionRequest
		fields []string
	}{
		{"deposit", request.CreateTransactionRequest{Type: "deposit", Amount: float(100)}, nil},
		{"buy without price", request.CreateTransactionRequest{Type: "BUY", Ticker: "aapl", Quantity: float(1)}, nil},
		{"sell with date", request.CreateTransactionRequest{Type: "sell", Ticker: "AAPL", Quantity: float(0.5), Price: float(10), Date: "2023-01-02T10:00:00Z"}, nil},
		{"missing type", request.CreateTransactionRequest{}, []string{"type"}},
		{"unknown type", request.CreateTransactionRequest{Type: "dividend"}, []string{"type"}},
		{"withdrawal without amount", request.CreateTransactionRequest{Type: "withdrawal"}, []string{"amount"}},
		{"negative deposit", request.CreateTransactionRequest{Type: "deposit", Amount: float(-5)}, []string{"amount"}},
		{"buy missing fields", request.CreateTransactionRequest{Type: "buy", Price: float(0)}, []string{"price", "quantity", "ticker"}},
		{"bad date", request.CreateTransactionRequest{Type: "deposit", Amount: float(1), Date: "01/02/2023"}, []string{"date"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateTransaction(tt.req)
			if tt.fields == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if len(vErr.Fields) != len(tt.fields) {
				t.Errorf("Expected fields %v, got %v", tt.fields, vErr.Fields)
			}
			for _, f := range tt.fields {
				if _, ok := vErr.Fields[f]; !ok {
					t.Errorf("Expected error for field %s, got %v", f, vErr.Fields)
				}
			}
		})
	}
}

func TestValidateCash(t *testing.T) {
	if err := ValidateCash(request.CashRequest{Amount: 10}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	err := ValidateCash(request.CashRequest{Amount: 0, Date: "yesterday"})
	if err == nil || err.Error() != "amount: amount must be positive; date: invalid date: expected YYYY-MM-DD or RFC3339" {
		t.Errorf("Unexpected error %v", err)
	}
}

func TestValidateCreateAccount(t *testing.T) {
	if err := ValidateCreateAccount(request.CreateAccountRequest{Name: "ISA"}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := ValidateCreateAccount(request.CreateAccountRequest{Name: "   "}); err == nil {
		t.Error("Expected error for blank name")
	}
}
