package sms

import "fmt"

// Accept thresholds are sender-dependent: a trusted sender needs less
// corroborating content, an untrusted sender needs strong content evidence.
const (
	knownSenderThreshold   = 0.4
	unknownSenderThreshold = 0.8

	// minIndicatorClasses is the number of distinct indicator categories
	// that must match for the content to count as transactional.
	minIndicatorClasses = 2
)

// ClassifyResult is the outcome of classifying one inbound message.
type ClassifyResult struct {
	// Accept reports whether the message should proceed to extraction.
	Accept bool

	// IsTransaction is true when the keyword-category match count reached
	// the transactional bar, independent of the final accept decision.
	// Downstream uses it to distinguish "valid but informational" from
	// "valid and actionable".
	IsTransaction bool

	Confidence float64
	Reason     string

	// KnownBank is true when the sender matched the bank allow-list.
	KnownBank bool
}

// Classifier decides whether an inbound message is a genuine bank
// transaction notification, spam/promotional, or unrelated.
type Classifier struct {
	patterns *PatternSet
}

// NewClassifier creates a classifier over the given pattern tables.
func NewClassifier(patterns *PatternSet) *Classifier {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	return &Classifier{patterns: patterns}
}

// Classify scores a normalized message against the pattern tables.
func (c *Classifier) Classify(text, senderID string) ClassifyResult {
	p := c.patterns

	// Promotional route markers lose before any content is considered.
	if p.PromotionalRoute.MatchString(senderID) {
		return ClassifyResult{
			Accept:     false,
			Confidence: 0,
			Reason:     fmt.Sprintf("promotional route sender %q", senderID),
		}
	}

	knownBank := p.IsKnownBankSender(senderID)

	confidence := 0.0
	if knownBank {
		confidence += 0.5
	}

	matched := 0
	for _, re := range p.Indicators {
		if re.MatchString(text) {
			matched++
		}
	}
	isTransaction := matched >= minIndicatorClasses
	if isTransaction {
		confidence += 0.5
	}

	// Spam and phishing indicators force rejection regardless of score.
	for _, re := range p.Spam {
		if re.MatchString(text) {
			return ClassifyResult{
				Accept:        false,
				IsTransaction: isTransaction,
				Confidence:    0,
				Reason:        fmt.Sprintf("spam indicator %q", re.String()),
				KnownBank:     knownBank,
			}
		}
	}
	if p.OTP.MatchString(text) {
		return ClassifyResult{
			Accept:        false,
			IsTransaction: isTransaction,
			Confidence:    0,
			Reason:        "OTP message",
			KnownBank:     knownBank,
		}
	}

	threshold := unknownSenderThreshold
	if knownBank {
		threshold = knownSenderThreshold
	}

	if confidence < threshold {
		return ClassifyResult{
			Accept:        false,
			IsTransaction: isTransaction,
			Confidence:    confidence,
			Reason:        fmt.Sprintf("confidence %.2f below threshold %.2f", confidence, threshold),
			KnownBank:     knownBank,
		}
	}

	return ClassifyResult{
		Accept:        true,
		IsTransaction: isTransaction,
		Confidence:    confidence,
		KnownBank:     knownBank,
	}
}
