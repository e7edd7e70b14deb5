package sms

import (
	"testing"
	"time"

	"github.com/expensetracker/backend/internal/model"
)

func TestExtractDebitNotification(t *testing.T) {
	e := NewExtractor(DefaultPatterns())

	got, rej := e.Extract("Rs 500.00 debited from A/c XX1234 at STARBUCKS COFFEE on 05-01-24", true, nil)
	if rej != nil {
		t.Fatalf("unexpected reject: %v", rej)
	}
	if got.Amount != 500.00 {
		t.Errorf("Amount = %v, want 500.00", got.Amount)
	}
	if got.Merchant != "Starbucks Coffee" {
		t.Errorf("Merchant = %q, want %q", got.Merchant, "Starbucks Coffee")
	}
	if got.IsHandle {
		t.Error("IsHandle = true, want false")
	}
	if got.Direction != model.DirectionDebit {
		t.Errorf("Direction = %q, want debit", got.Direction)
	}
	if got.AccountLast4 != "1234" {
		t.Errorf("AccountLast4 = %q, want %q", got.AccountLast4, "1234")
	}
	wantDate := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local)
	if !got.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", got.Date, wantDate)
	}
}

func TestExtractAmount(t *testing.T) {
	e := NewExtractor(DefaultPatterns())

	tests := []struct {
		text string
		want float64
	}{
		{"Rs 500.00 debited from A/c XX1234", 500.00},
		{"Rs. 1,234.50 debited from A/c XX1234", 1234.50},
		{"INR 2500 debited from A/c XX1234", 2500},
		{"Rs 1234.56 debited from A/c XX1234", 1234.56},
		{"Rs 5,00,000 credited to A/c XX1234", 500000},
		{"₹250 paid from A/c XX1234", 250},
	}

	for _, tt := range tests {
		got, rej := e.Extract(tt.text, true, nil)
		if rej != nil {
			t.Errorf("Extract(%q) rejected: %v", tt.text, rej)
			continue
		}
		if got.Amount != tt.want {
			t.Errorf("Extract(%q).Amount = %v, want %v", tt.text, got.Amount, tt.want)
		}
	}
}

func TestExtractDirection(t *testing.T) {
	e := NewExtractor(DefaultPatterns())

	tests := []struct {
		name string
		text string
		want model.Direction
	}{
		{
			name: "dr marker",
			text: "Rs 100.00 withdrawn from A/c XX1234 Dr.",
			want: model.DirectionDebit,
		},
		{
			name: "cr marker",
			text: "A/c XX1234 Cr. with Rs 100.00 transferred",
			want: model.DirectionCredit,
		},
		{
			name: "dr wins when both markers present",
			text: "Rs 100.00 transferred A/c XX1234 Dr. balance Cr.",
			want: model.DirectionDebit,
		},
		{
			name: "reversal is credit despite paid verb",
			text: "Rs 250.00 paid earlier reversed to A/c XX1234",
			want: model.DirectionCredit,
		},
		{
			name: "credited verb",
			text: "INR 2,500.00 credited to A/c XX1234 via NEFT",
			want: model.DirectionCredit,
		},
		{
			name: "loose credit mention",
			text: "Rs 500.00 transferred to your credit account XX1234",
			want: model.DirectionCredit,
		},
		{
			name: "default is debit",
			text: "Rs 500.00 transferred from A/c XX1234",
			want: model.DirectionDebit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rej := e.Extract(tt.text, true, nil)
			if rej != nil {
				t.Fatalf("unexpected reject: %v", rej)
			}
			if got.Direction != tt.want {
				t.Errorf("Direction = %q, want %q", got.Direction, tt.want)
			}
		})
	}
}

func TestExtractPaymentHandle(t *testing.T) {
	e := NewExtractor(DefaultPatterns())

	got, rej := e.Extract("Rs 89.00 paid to 8007320919@ybl via UPI Ref 402819 from A/c XX1234", true, nil)
	if rej != nil {
		t.Fatalf("unexpected reject: %v", rej)
	}
	if !got.IsHandle {
		t.Error("IsHandle = false, want true")
	}
	if got.Merchant != "8007320919@ybl" {
		t.Errorf("Merchant = %q, want handle kept verbatim", got.Merchant)
	}
}

func TestExtractSkipsMailAddresses(t *testing.T) {
	e := NewExtractor(DefaultPatterns())

	texts := []string{
		"Rs 100.00 sent to someone@gmail from A/c XX1234",
		"Rs 100.00 sent to payee@gmail.com from A/c XX1234",
	}
	for _, text := range texts {
		got, rej := e.Extract(text, true, nil)
		if rej != nil {
			t.Fatalf("unexpected reject for %q: %v", text, rej)
		}
		if got.IsHandle {
			t.Errorf("Extract(%q).IsHandle = true, want false", text)
		}
	}
}

func TestExtractMerchantCleaning(t *testing.T) {
	e := NewExtractor(DefaultPatterns())

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "routing prefix stripped",
			text: "Rs 342.00 debited from A/c XX1234 at UPI-ZOMATO-ORDER on 05-01-24",
			want: "Zomato Order",
		},
		{
			name: "reference number removed",
			text: "Rs 890.00 debited from A/c XX1234 at POS-BIGBASKET 402819471234 Ref 999",
			want: "Bigbasket",
		},
		{
			name: "clause boundary cuts trailing context",
			text: "Rs 560.00 spent on SWIGGY INSTAMART Avl Bal Rs 12,000 A/c XX1234",
			want: "Swiggy Instamart",
		},
		{
			name: "short words upper long words title",
			text: "Rs 120.00 debited from A/c XX1234 at SV GRAND HOTEL on 05-01-24",
			want: "SV Grand Hotel",
		},
		{
			name: "no merchant phrase",
			text: "Rs 100.00 debited A/c XX1234 on 05-01-24",
			want: model.UnknownMerchant,
		},
		{
			name: "date fragment is not a merchant",
			text: "Rs 100.00 debited A/c XX1234 at 05-01-24",
			want: model.UnknownMerchant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rej := e.Extract(tt.text, true, nil)
			if rej != nil {
				t.Fatalf("unexpected reject: %v", rej)
			}
			if got.Merchant != tt.want {
				t.Errorf("Merchant = %q, want %q", got.Merchant, tt.want)
			}
		})
	}
}

func TestExtractAccountLast4(t *testing.T) {
	e := NewExtractor(DefaultPatterns())

	tests := []struct {
		text string
		want string
	}{
		{"Rs 100.00 debited from A/c XX1234", "1234"},
		{"Rs 100.00 debited from Acct no. 5678", "5678"},
		{"Rs 100.00 spent on card ending 4242", "4242"},
		{"Rs 100.00 spent using card **9876", "9876"},
		{"Rs 100.00 debited from A/c XX123", "123"},
	}

	for _, tt := range tests {
		got, rej := e.Extract(tt.text, true, nil)
		if rej != nil {
			t.Errorf("Extract(%q) rejected: %v", tt.text, rej)
			continue
		}
		if got.AccountLast4 != tt.want {
			t.Errorf("Extract(%q).AccountLast4 = %q, want %q", tt.text, got.AccountLast4, tt.want)
		}
	}
}

func TestExtractRejects(t *testing.T) {
	e := NewExtractor(DefaultPatterns())

	tests := []struct {
		name      string
		text      string
		knownBank bool
		wantCode  RejectCode
	}{
		{
			name:      "no digits",
			text:      "amount debited from your account",
			knownBank: true,
			wantCode:  RejectNotTransactional,
		},
		{
			name:      "no transaction verb",
			text:      "Rs 500 balance is low",
			knownBank: true,
			wantCode:  RejectNotTransactional,
		},
		{
			name:      "unknown sender without account digits",
			text:      "Rs 500.00 debited at STORE on 05-01-24",
			knownBank: false,
			wantCode:  RejectNoAccountAnchor,
		},
		{
			name:      "no amount",
			text:      "debited from A/c XX1234 for 10 items",
			knownBank: true,
			wantCode:  RejectNoAmount,
		},
		{
			name:      "zero amount",
			text:      "Rs 0.00 debited from A/c XX1234",
			knownBank: true,
			wantCode:  RejectNoAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rej := e.Extract(tt.text, tt.knownBank, nil)
			if rej == nil {
				t.Fatalf("expected reject, got %+v", got)
			}
			if rej.Code != tt.wantCode {
				t.Errorf("reject code = %q, want %q", rej.Code, tt.wantCode)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	e := NewExtractor(DefaultPatterns())
	fixedNow := time.Date(2024, time.June, 1, 10, 30, 0, 0, time.Local)
	e.now = func() time.Time { return fixedNow }

	t.Run("explicit time wins over embedded date", func(t *testing.T) {
		explicit := time.Date(2024, time.March, 15, 13, 45, 0, 0, time.Local)
		got, rej := e.Extract("Rs 500.00 debited from A/c XX1234 on 05-01-24", true, &explicit)
		if rej != nil {
			t.Fatalf("unexpected reject: %v", rej)
		}
		want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)
		if !got.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", got.Date, want)
		}
	})

	t.Run("four digit year and slashes", func(t *testing.T) {
		got, rej := e.Extract("Rs 500.00 debited from A/c XX1234 on 15/08/2024", true, nil)
		if rej != nil {
			t.Fatalf("unexpected reject: %v", rej)
		}
		want := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.Local)
		if !got.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", got.Date, want)
		}
	})

	t.Run("two digit year maps to 2000s", func(t *testing.T) {
		got, rej := e.Extract("Rs 500.00 debited from A/c XX1234 on 28-02-23", true, nil)
		if rej != nil {
			t.Fatalf("unexpected reject: %v", rej)
		}
		want := time.Date(2023, time.February, 28, 0, 0, 0, 0, time.Local)
		if !got.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", got.Date, want)
		}
	})

	t.Run("malformed date falls back to now", func(t *testing.T) {
		got, rej := e.Extract("Rs 500.00 debited from A/c XX1234 on 45-13-24", true, nil)
		if rej != nil {
			t.Fatalf("unexpected reject: %v", rej)
		}
		want := model.Day(fixedNow)
		if !got.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", got.Date, want)
		}
	})

	t.Run("no date token falls back to now", func(t *testing.T) {
		got, rej := e.Extract("Rs 500.00 debited from A/c XX1234", true, nil)
		if rej != nil {
			t.Fatalf("unexpected reject: %v", rej)
		}
		want := model.Day(fixedNow)
		if !got.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", got.Date, want)
		}
	})
}
