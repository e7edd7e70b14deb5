package sms

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/expensetracker/backend/internal/model"
)

// maxMerchantLen is the sanity ceiling on a cleaned merchant token; anything
// longer is a parse that ran away into the rest of the sentence.
const maxMerchantLen = 40

// ParsedExpense is the structured result of extracting one accepted message.
type ParsedExpense struct {
	Amount       float64
	Merchant     string
	IsHandle     bool
	Direction    model.Direction
	Date         time.Time
	AccountLast4 string
}

// Extractor pulls amount, direction, merchant, account digits and date out
// of an accepted message.
type Extractor struct {
	patterns    *PatternSet
	prepRes     []*regexp.Regexp
	dateFragRe  *regexp.Regexp
	separatorRe *regexp.Regexp
	titleCaser  cases.Caser
	now         func() time.Time
}

// NewExtractor creates an extractor over the given pattern tables.
func NewExtractor(patterns *PatternSet) *Extractor {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	prepRes := make([]*regexp.Regexp, len(patterns.MerchantPrepositions))
	for i, p := range patterns.MerchantPrepositions {
		prepRes[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p) + `\s+(.+)$`)
	}
	return &Extractor{
		patterns:    patterns,
		prepRes:     prepRes,
		dateFragRe:  regexp.MustCompile(`^\d{1,2}(?:\s+(?:[A-Za-z]{3}|\d{1,2}))(?:\s+\d{2,4})?$`),
		separatorRe: regexp.MustCompile(`[\s\-_/*,]+`),
		titleCaser:  cases.Title(language.English),
		now:         time.Now,
	}
}

// Extract parses the message. explicitTime, when non-nil, wins over any
// embedded date (used by bulk historical scans where the true receipt time
// is known out-of-band). A nil result carries a *RejectError explaining the
// abort; aborts here are routine outcomes, not faults.
func (e *Extractor) Extract(text string, isKnownBankSender bool, explicitTime *time.Time) (*ParsedExpense, *RejectError) {
	p := e.patterns

	// Defense in depth, independent of the classifier: digits plus any
	// transaction verb is the minimal bar for attempting extraction.
	if !strings.ContainsAny(text, "0123456789") || !p.TransactionVerb.MatchString(text) {
		return nil, rejectf(RejectNotTransactional, "no transaction signal in text")
	}

	last4 := e.extractLast4(text)
	if last4 == "" && !isKnownBankSender {
		// Unidentified senders without an account anchor are too risky to
		// auto-ingest.
		return nil, rejectf(RejectNoAccountAnchor, "unknown sender and no account digits")
	}

	amount, ok := e.extractAmount(text)
	if !ok {
		return nil, rejectf(RejectNoAmount, "no amount found")
	}

	merchant, isHandle := e.extractMerchant(text)

	return &ParsedExpense{
		Amount:       amount,
		Merchant:     merchant,
		IsHandle:     isHandle,
		Direction:    e.extractDirection(text),
		Date:         e.resolveDate(text, explicitTime),
		AccountLast4: last4,
	}, nil
}

func (e *Extractor) extractLast4(text string) string {
	for _, re := range e.patterns.AccountDigits {
		if m := re.FindStringSubmatch(text); m != nil {
			digits := m[1]
			if len(digits) > 4 {
				digits = digits[len(digits)-4:]
			}
			return digits
		}
	}
	return ""
}

func (e *Extractor) extractAmount(text string) (float64, bool) {
	m := e.patterns.Amount.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	raw := strings.ReplaceAll(m[1], ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// extractDirection applies the prioritized rule cascade. A trailing Dr.
// marker wins over Cr. when both are present: banks show both in
// reversal-adjacent contexts and the primary marker reflects the money's
// origin. Credit verbs are checked before debit verbs so refund sentences
// ("refund of ... debited earlier") are not misclassified. The default is
// debit: a missed credit is cheaper than a missed expense.
func (e *Extractor) extractDirection(text string) model.Direction {
	p := e.patterns
	hasDr := p.DebitMarker.MatchString(text)
	hasCr := p.CreditMarker.MatchString(text)
	switch {
	case hasDr:
		return model.DirectionDebit
	case hasCr:
		return model.DirectionCredit
	case p.CreditVerbs.MatchString(text):
		return model.DirectionCredit
	case p.DebitVerbs.MatchString(text):
		return model.DirectionDebit
	case strings.Contains(strings.ToLower(text), "credit"):
		return model.DirectionCredit
	default:
		return model.DirectionDebit
	}
}

// extractMerchant returns the raw merchant token and whether it is a
// payment handle. Handles are returned verbatim: they must stay stable so
// the merchant dictionary can key on them long-term.
func (e *Extractor) extractMerchant(text string) (string, bool) {
	if handle := e.findHandle(text); handle != "" {
		return handle, true
	}

	for _, re := range e.prepRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		fragment := m[1]
		if loc := e.patterns.ClauseBoundary.FindStringIndex(fragment); loc != nil {
			fragment = fragment[:loc[0]]
		}
		if cleaned := e.cleanMerchant(fragment); cleaned != model.UnknownMerchant {
			return cleaned, false
		}
	}
	return model.UnknownMerchant, false
}

// findHandle returns the first payment handle that is neither a generic
// mail provider nor part of a web domain.
func (e *Extractor) findHandle(text string) string {
	for _, loc := range e.patterns.PaymentHandle.FindAllStringSubmatchIndex(text, -1) {
		handle := text[loc[2]:loc[3]]
		end := loc[3]
		// user@host.com is a domain, not a payment handle
		if end < len(text) && text[end] == '.' {
			continue
		}
		suffix := strings.ToLower(handle[strings.LastIndexByte(handle, '@')+1:])
		if e.patterns.GenericHandleSuffixes[suffix] {
			continue
		}
		return handle
	}
	return ""
}

// cleanMerchant strips routing prefixes and reference IDs from a raw token
// and title-cases it. Tokens that clean down to nothing, run past the
// length ceiling, or look like a leaked date fragment are discarded.
func (e *Extractor) cleanMerchant(raw string) string {
	token := strings.TrimSpace(raw)

	for {
		stripped := e.patterns.RoutingPrefix.ReplaceAllString(token, "")
		if stripped == token {
			break
		}
		token = stripped
	}

	token = e.patterns.LongNumber.ReplaceAllString(token, "")
	token = e.separatorRe.ReplaceAllString(token, " ")
	token = strings.TrimSpace(token)

	if token == "" || len(token) > maxMerchantLen || e.dateFragRe.MatchString(token) {
		return model.UnknownMerchant
	}

	words := strings.Fields(token)
	for i, w := range words {
		if len(w) > 2 {
			words[i] = e.titleCaser.String(strings.ToLower(w))
		} else {
			words[i] = strings.ToUpper(w)
		}
	}
	return strings.Join(words, " ")
}

// resolveDate prefers the explicit timestamp, then an embedded DD-MM-YY(YY)
// token, then now. Malformed embedded dates fall back to now rather than
// aborting the record.
func (e *Extractor) resolveDate(text string, explicit *time.Time) time.Time {
	if explicit != nil {
		return model.Day(*explicit)
	}
	if m := e.patterns.DateToken.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		if day >= 1 && day <= 31 && month >= 1 && month <= 12 && year >= 2000 && year <= 2100 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		}
	}
	return model.Day(e.now())
}
