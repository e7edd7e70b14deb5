package sms

import (
	"regexp"
	"strings"
)

// PatternSet holds the heuristic tables the classifier and extractor match
// against. It is injected rather than hard-coded so tests and regional
// template variants can swap tables without touching pipeline logic.
type PatternSet struct {
	// Version identifies the table revision for logging and fixtures.
	Version string

	// BankSenders is the allow-list of known bank / payment-processor codes,
	// matched fuzzily (substring, case-insensitive) against the sender ID
	// with its routing prefix stripped.
	BankSenders []string

	// PromotionalRoute matches sender IDs carrying a bulk/marketing route
	// class suffix. Such messages are rejected before any content scoring.
	PromotionalRoute *regexp.Regexp

	// SenderPrefix strips the short routing prefix (e.g. "AD-") from a
	// sender ID to obtain the bank-name key.
	SenderPrefix *regexp.Regexp

	// Indicators maps an indicator class name to its pattern. Confidence is
	// scored on the number of DISTINCT classes that match, not raw hits.
	Indicators map[string]*regexp.Regexp

	// Spam patterns force rejection regardless of sender or other content.
	Spam []*regexp.Regexp

	// OTP matches a numeric code literally associated with the word OTP.
	// Deliberately narrow: the bare substring "OTP" in a disclaimer must
	// not trip it.
	OTP *regexp.Regexp

	// TransactionVerb is the loose defense-in-depth check the extractor
	// applies independently of the classifier.
	TransactionVerb *regexp.Regexp

	// AccountDigits are the labeled last-4 patterns, tried in order.
	AccountDigits []*regexp.Regexp

	// Amount captures a currency-marker-prefixed numeric value.
	Amount *regexp.Regexp

	// Direction markers and verb sets, in cascade priority order.
	DebitMarker  *regexp.Regexp
	CreditMarker *regexp.Regexp
	CreditVerbs  *regexp.Regexp
	DebitVerbs   *regexp.Regexp

	// PaymentHandle matches a UPI-style payment handle (user@psp). Generic
	// web/mail domains are excluded by GenericHandleSuffixes.
	PaymentHandle         *regexp.Regexp
	GenericHandleSuffixes map[string]bool

	// MerchantPrepositions introduce the merchant phrase; longest first.
	MerchantPrepositions []string

	// ClauseBoundary terminates the merchant phrase.
	ClauseBoundary *regexp.Regexp

	// RoutingPrefix strips payment-rail prefixes from a raw merchant token.
	RoutingPrefix *regexp.Regexp

	// LongNumber removes leaked reference IDs from merchant tokens.
	LongNumber *regexp.Regexp

	// DateToken matches an embedded DD-MM-YY(YY) date.
	DateToken *regexp.Regexp
}

// DefaultPatterns returns the production table set, tuned for Indian
// banking/UPI SMS templates.
func DefaultPatterns() *PatternSet {
	return &PatternSet{
		Version: "2024-02",

		// Seeded from the bank sender IDs observed on-device, sans routing
		// prefixes: the same institution appears under AD-/VK-/JD-/AX- etc.
		BankSenders: []string{
			"HDFC", "ICICI", "SBI", "SBIINB", "AXIS", "KOTAK", "PNB",
			"BOB", "CANBNK", "UNIONB", "IDFCFB", "YESBNK", "INDUSB",
			"PAYTM", "GPAY", "PHONEPE", "AMZN", "AMAZON", "BHIM", "FEDBNK",
		},

		PromotionalRoute: regexp.MustCompile(`(?i)-(P|PROMO)$`),
		SenderPrefix:     regexp.MustCompile(`^[A-Za-z]{2}-`),

		Indicators: map[string]*regexp.Regexp{
			"currency": regexp.MustCompile(`(?i)(?:\bRs\.?|\bINR\b|₹)`),
			"debit":    regexp.MustCompile(`(?i)\b(?:debit(?:ed)?|spent|paid|withdrawn|deducted|purchase[d]?)\b`),
			"credit":   regexp.MustCompile(`(?i)\b(?:credit(?:ed)?|received|deposited|refund(?:ed)?)\b`),
			"account":  regexp.MustCompile(`(?i)(?:\ba/c\b|\bacct\b|\baccount\b|\bcard\b|\bwallet\b)`),
			"rail":     regexp.MustCompile(`(?i)\b(?:UPI|IMPS|NEFT|RTGS|netbanking|ATM|POS|VPA)\b`),
			"txnNoun":  regexp.MustCompile(`(?i)\b(?:transaction|txn|transfer(?:red)?|payment|bal(?:ance)?|avl)\b`),
		},

		Spam: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:congratulations?|congrats)\b`),
			regexp.MustCompile(`(?i)\b(?:winner|you (?:have )?won|lottery|lucky draw)\b`),
			regexp.MustCompile(`(?i)claim your (?:prize|reward|cashback)`),
			regexp.MustCompile(`(?i)click (?:here|the link|below)`),
			regexp.MustCompile(`(?i)\b(?:urgent(?:ly)?|act now|limited time|expires? (?:today|soon))\b`),
			regexp.MustCompile(`(?i)\bfree\b.{0,20}\b(?:gift|offer|voucher)\b`),
			regexp.MustCompile(`(?i)\b(?:loan approved|pre-approved)\b`),
		},

		OTP: regexp.MustCompile(`(?i)(?:\b\d{4,8}\s+is\s+(?:your|the)\s+OTP\b|\bOTP\s*(?:is|:)\s*\d{4,8}\b|\buse\s+OTP\s+\d{4,8}\b)`),

		TransactionVerb: regexp.MustCompile(`(?i)\b(?:debit(?:ed)?|credit(?:ed)?|spent|paid|sent|received|withdrawn|deposited|transferred|purchase[d]?|deducted)\b`),

		AccountDigits: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:a/c|acct|account)\s*(?:no\.?\s*)?[Xx\*]*(\d{3,4})`),
			regexp.MustCompile(`(?i)\bcard\s*(?:no\.?\s*|ending\s*(?:in\s*)?)?[Xx\*]*(\d{4})`),
			regexp.MustCompile(`[Xx\*]{2,}(\d{4})\b`),
		},

		Amount: regexp.MustCompile(`(?i)(?:Rs\.?|INR|₹)\s*((?:[0-9]+,)*[0-9]+(?:\.[0-9]{1,2})?)`),

		DebitMarker:  regexp.MustCompile(`(?i)\bDr\.?\b`),
		CreditMarker: regexp.MustCompile(`(?i)\bCr\.?\b`),
		CreditVerbs:  regexp.MustCompile(`(?i)\b(?:credited|received|deposited|refund(?:ed)?|revers(?:ed|al))\b`),
		DebitVerbs:   regexp.MustCompile(`(?i)\b(?:debited|spent|paid|sent|withdrawn|purchase[d]?|deducted)\b`),

		PaymentHandle:         regexp.MustCompile(`\b([A-Za-z0-9][A-Za-z0-9._\-]*@[A-Za-z]+)\b`),
		GenericHandleSuffixes: map[string]bool{"gmail": true, "yahoo": true, "hotmail": true, "outlook": true, "rediffmail": true},

		MerchantPrepositions: []string{
			"spent on", "paid to", "sent to", "trf to", "to", "at", "via", "by", "from",
		},

		ClauseBoundary: regexp.MustCompile(`(?i)\s+(?:on|Ref|Avl|Bal|end|txn|UPI)\b|[.;\n]`),

		RoutingPrefix: regexp.MustCompile(`(?i)^(?:UPI|IMPS|NEFT|RTGS|REV|VPS|IPS|ACH|POS|ATM|MMT|BIL)[\-/ ]+`),

		LongNumber: regexp.MustCompile(`\d{6,}`),

		DateToken: regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})\b`),
	}
}

// IsKnownBankSender reports whether the sender ID matches the bank
// allow-list after stripping the routing prefix. Matching is a partial,
// case-insensitive comparison because operators vary the surrounding text
// (HDFCBK, HDFCBN, ...).
func (p *PatternSet) IsKnownBankSender(senderID string) bool {
	return p.BankCode(senderID) != ""
}

// BankCode returns the matched allow-list code for a sender, or "".
func (p *PatternSet) BankCode(senderID string) string {
	key := strings.ToUpper(p.StripSenderPrefix(senderID))
	for _, code := range p.BankSenders {
		if key != "" && strings.Contains(key, code) {
			return code
		}
	}
	return ""
}

// StripSenderPrefix removes the short routing/class prefix from a sender ID.
func (p *PatternSet) StripSenderPrefix(senderID string) string {
	return p.SenderPrefix.ReplaceAllString(senderID, "")
}
