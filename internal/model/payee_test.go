package model

import "testing"

func TestPayeeLabel(t *testing.T) {
	tests := []struct {
		name  string
		payee Payee
		want  string
	}{
		{name: "person", payee: Payee{Kind: PayeePerson, Recipient: "Bob"}, want: "Bob"},
		{name: "mobile", payee: Payee{Kind: PayeeMobile, Operator: "TMOBILE", Number: "5551234"}, want: "MOBILE-TMOBILE-5551234"},
		{name: "electricity", payee: Payee{Kind: PayeeElectricity, BillNumber: "EL-1"}, want: "ELECTRICITY-EL-1"},
		{name: "internet", payee: Payee{Kind: PayeeInternet, BillNumber: "IN-2"}, want: "INTERNET-IN-2"},
		{name: "tv", payee: Payee{Kind: PayeeTV, BillNumber: "TV-3"}, want: "TV-TV-3"},
		{name: "rent", payee: Payee{Kind: PayeeRent, BillNumber: "R-4"}, want: "RENT-R-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.payee.Label(); got != tt.want {
				t.Fatalf("Label() = %q, want %q", got, tt.want)
			}
			if want := "Transfer to " + tt.want; tt.payee.Description() != want {
				t.Fatalf("Description() = %q, want %q", tt.payee.Description(), want)
			}
		})
	}
}

func TestPayeeValid(t *testing.T) {
	tests := []struct {
		name  string
		payee Payee
		want  bool
	}{
		{name: "person ok", payee: Payee{Kind: PayeePerson, Recipient: "Bob"}, want: true},
		{name: "person empty", payee: Payee{Kind: PayeePerson}, want: false},
		{name: "mobile ok", payee: Payee{Kind: PayeeMobile, Operator: "TMOBILE", Number: "5551234"}, want: true},
		{name: "mobile without number", payee: Payee{Kind: PayeeMobile, Operator: "TMOBILE"}, want: false},
		{name: "rent ok", payee: Payee{Kind: PayeeRent, BillNumber: "R-4"}, want: true},
		{name: "rent without bill", payee: Payee{Kind: PayeeRent}, want: false},
		{name: "unknown kind", payee: Payee{Kind: "loan"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.payee.Valid(); got != tt.want {
				t.Fatalf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewSessionStripsSecret(t *testing.T) {
	session := NewSession(Account{ID: "acc-1", Email: "a@x.com", Password: "secret1"})
	if session.Password != "" {
		t.Fatalf("session must not carry the secret")
	}
	if session.ID != "acc-1" || session.Email != "a@x.com" {
		t.Fatalf("session must keep the account fields: %+v", session)
	}
}
