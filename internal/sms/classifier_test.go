package sms

import "testing"

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultPatterns())

	tests := []struct {
		name            string
		text            string
		sender          string
		wantAccept      bool
		wantTransaction bool
		wantConfidence  float64
		wantKnownBank   bool
	}{
		{
			name:            "known bank debit notification",
			text:            "Rs 500.00 debited from A/c XX1234 at STARBUCKS COFFEE on 05-01-24",
			sender:          "AD-HDFCBK",
			wantAccept:      true,
			wantTransaction: true,
			wantConfidence:  1.0,
			wantKnownBank:   true,
		},
		{
			name:            "same content from unknown sender rejected",
			text:            "Rs 500.00 debited from A/c XX1234 at STARBUCKS COFFEE on 05-01-24",
			sender:          "JM-RANDOM",
			wantAccept:      false,
			wantTransaction: true,
			wantConfidence:  0.5,
		},
		{
			name:            "known bank informational message accepted but not transactional",
			text:            "Your monthly statement is now ready for download",
			sender:          "VM-ICICIB",
			wantAccept:      true,
			wantTransaction: false,
			wantConfidence:  0.5,
			wantKnownBank:   true,
		},
		{
			name:       "promotional route suffix rejected before scoring",
			text:       "Rs 500.00 debited from A/c XX1234",
			sender:     "HDFCBK-P",
			wantAccept: false,
		},
		{
			name:       "promo suffix spelled out rejected",
			text:       "Rs 500.00 debited from A/c XX1234",
			sender:     "VM-ICICI-PROMO",
			wantAccept: false,
		},
		{
			name:          "spam forces rejection even from known bank",
			text:          "Congratulations! You have won Rs 10,000. Click here to claim your prize",
			sender:        "AD-HDFCBK",
			wantAccept:    false,
			wantKnownBank: true,
		},
		{
			name:            "otp message rejected",
			text:            "123456 is your OTP for txn of Rs 4,500 at Amazon. Valid 10 mins",
			sender:          "AD-HDFCBK",
			wantAccept:      false,
			wantTransaction: true,
			wantKnownBank:   true,
		},
		{
			name:            "otp disclaimer does not trip rejection",
			text:            "Rs 500.00 debited from A/c XX1234. Never share OTP or PIN with anyone",
			sender:          "AD-HDFCBK",
			wantAccept:      true,
			wantTransaction: true,
			wantConfidence:  1.0,
			wantKnownBank:   true,
		},
		{
			name:           "single indicator class is not transactional",
			text:           "Rs 99 recharge plans now available",
			sender:         "JM-OFFERS",
			wantAccept:     false,
			wantConfidence: 0,
		},
		{
			name:       "loan spam from unknown sender rejected",
			text:       "Pre-approved personal loan of Rs 5,00,000 waiting for you",
			sender:     "BP-LOANS",
			wantAccept: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text, tt.sender)
			if got.Accept != tt.wantAccept {
				t.Errorf("Accept = %v, want %v (reason %q)", got.Accept, tt.wantAccept, got.Reason)
			}
			if got.IsTransaction != tt.wantTransaction {
				t.Errorf("IsTransaction = %v, want %v", got.IsTransaction, tt.wantTransaction)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.KnownBank != tt.wantKnownBank {
				t.Errorf("KnownBank = %v, want %v", got.KnownBank, tt.wantKnownBank)
			}
		})
	}
}

func TestBankCode(t *testing.T) {
	p := DefaultPatterns()

	tests := []struct {
		sender string
		want   string
	}{
		{"AD-HDFCBK", "HDFC"},
		{"VM-ICICIB", "ICICI"},
		{"AX-SBIINB", "SBI"},
		{"PAYTM", "PAYTM"},
		{"JM-RANDOM", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := p.BankCode(tt.sender); got != tt.want {
			t.Errorf("BankCode(%q) = %q, want %q", tt.sender, got, tt.want)
		}
	}
}

func TestIsKnownBankSender(t *testing.T) {
	p := DefaultPatterns()

	if !p.IsKnownBankSender("AD-HDFCBK") {
		t.Error("expected AD-HDFCBK to be a known bank sender")
	}
	if !p.IsKnownBankSender("ad-hdfcbk") {
		t.Error("expected matching to be case insensitive")
	}
	if p.IsKnownBankSender("JM-RANDOM") {
		t.Error("did not expect JM-RANDOM to be a known bank sender")
	}
}
