// Package model defines the domain types shared by the store and services.
package model

import "time"

// Direction indicates whether money moved out of or into an account.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// GenericLast4 is the sentinel last-4 value for accounts whose source
// message carried no account or card digits.
const GenericLast4 = "XXXX"

// UnknownMerchant is the placeholder used when no merchant token could be
// extracted or the extracted token was discarded as garbage.
const UnknownMerchant = "Unknown Merchant"

// Transaction is a single financial movement.
type Transaction struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`

	Amount    float64   `json:"amount"`
	Direction Direction `json:"direction"`

	// DisplayMerchant is the user-facing label. It is mutable: batch
	// relabeling and direct edits rewrite it.
	DisplayMerchant string `json:"displayMerchant"`

	// OriginalMerchant is the raw token extracted at ingestion time. It is
	// set once by the persister and never overwritten afterwards; it is the
	// stable join key for retroactive relabeling and subscription grouping.
	OriginalMerchant string `json:"originalMerchant"`

	CategoryID string `json:"categoryId,omitempty"`
	AccountID  string `json:"accountId,omitempty"`

	// OccurredAt has day granularity.
	OccurredAt time.Time `json:"occurredAt"`

	// SourceText is the raw originating message; empty for manual entries.
	SourceText string `json:"sourceText,omitempty"`

	// MerchantKey and DayKey are derived lookup fields maintained by the
	// store on every write (lowercased display merchant, YYYY-MM-DD day).
	// They exist so the duplicate-suppression query is an exact match in
	// Firestore as well as in memory.
	MerchantKey string `json:"-"`
	DayKey      string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MerchantMapping is one learned dictionary entry: a raw SMS token mapped to
// a user-chosen display name and default category. Unique per (RawToken,
// OwnerID), case-insensitively.
type MerchantMapping struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	RawToken    string    `json:"rawToken"`
	DisplayName string    `json:"displayName"`
	CategoryID  string    `json:"categoryId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Account is a logical bank/wallet account inferred from SMS sender plus
// last-4 digits. Unique per (BankName, Last4, OwnerID).
type Account struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	BankName  string    `json:"bankName"`
	Last4     string    `json:"last4"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category is a per-user spending bucket with an optional monthly budget
// ceiling (zero means no ceiling).
type Category struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Name          string    `json:"name"`
	MonthlyBudget float64   `json:"monthlyBudget,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Frequency is the inferred cadence of a recurring payment.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// CanonicalDays returns the canonical period of the frequency in days.
func (f Frequency) CanonicalDays() float64 {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyYearly:
		return 365
	default:
		return 30
	}
}

// Subscription is a detected recurring-payment hypothesis. It is recomputed
// and upserted per (MerchantKey, OwnerID) on every detection run; MerchantKey
// is derived from the immutable original token so renaming the merchant
// refreshes the same row instead of creating a second one.
type Subscription struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Merchant     string    `json:"merchant"`
	MerchantKey  string    `json:"merchantKey"`
	Amount       float64   `json:"amount"`
	Frequency    Frequency `json:"frequency"`
	Confidence   float64   `json:"confidence"`
	NextExpected time.Time `json:"nextExpected"`
	LastSeen     time.Time `json:"lastSeen"`
	Occurrences  int       `json:"occurrences"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MonthlyEquivalent normalizes the subscription amount onto a monthly basis.
func (s *Subscription) MonthlyEquivalent() float64 {
	switch s.Frequency {
	case FrequencyWeekly:
		return s.Amount * 4.33
	case FrequencyYearly:
		return s.Amount / 12
	default:
		return s.Amount
	}
}

// UnnamedMerchant is one entry of the "still needs naming" backlog.
type UnnamedMerchant struct {
	RawToken   string  `json:"rawToken"`
	Count      int     `json:"count"`
	LastAmount float64 `json:"lastAmount"`
}

// SpendingBucket is one row of a spending aggregation.
type SpendingBucket struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Day truncates a time to day granularity in its location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
