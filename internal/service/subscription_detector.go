package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/expensetracker/backend/internal/model"
)

const (
	// detectionWindow is how far back the detector looks.
	detectionWindow = 183 * 24 * time.Hour // ~6 months

	// amountTolerance is the maximum relative deviation from the group's
	// mean amount. A subscription's price is assumed stable; volatile
	// amounts are not a subscription signal.
	amountTolerance = 0.05

	// minConfidence discards weak cadence matches.
	minConfidence = 0.6

	// minOccurrences is the smallest group worth testing for cadence.
	minOccurrences = 2
)

// frequencyBand maps a mean-interval range onto a frequency.
type frequencyBand struct {
	frequency model.Frequency
	min, max  float64
}

var frequencyBands = []frequencyBand{
	{model.FrequencyWeekly, 5, 9},
	{model.FrequencyMonthly, 25, 35},
	{model.FrequencyYearly, 350, 380},
}

// DetectRecurring analyzes debit history for recurring payments. Groups are
// keyed on the immutable original merchant token so renames never split a
// subscription's history.
func DetectRecurring(txns []*model.Transaction, now time.Time) []*model.Subscription {
	cutoff := now.Add(-detectionWindow)

	groups := make(map[string][]*model.Transaction)
	for _, txn := range txns {
		if txn.Direction != model.DirectionDebit || txn.OccurredAt.Before(cutoff) {
			continue
		}
		groups[subscriptionMerchantKey(txn)] = append(groups[subscriptionMerchantKey(txn)], txn)
	}

	var results []*model.Subscription
	for _, group := range groups {
		if sub := detectGroup(group); sub != nil {
			results = append(results, sub)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].Merchant < results[j].Merchant
	})
	return results
}

// subscriptionMerchantKey prefers the original token over the mutable
// display name.
func subscriptionMerchantKey(txn *model.Transaction) string {
	if txn.OriginalMerchant != "" {
		return strings.ToLower(txn.OriginalMerchant)
	}
	return strings.ToLower(txn.DisplayMerchant)
}

func detectGroup(group []*model.Transaction) *model.Subscription {
	if len(group) < minOccurrences {
		return nil
	}

	var total float64
	for _, txn := range group {
		total += txn.Amount
	}
	mean := total / float64(len(group))
	for _, txn := range group {
		if mean <= 0 || math.Abs(txn.Amount-mean)/mean > amountTolerance {
			return nil
		}
	}

	sort.Slice(group, func(i, j int) bool {
		return group[i].OccurredAt.Before(group[j].OccurredAt)
	})

	var intervals []float64
	for i := 1; i < len(group); i++ {
		days := math.Abs(group[i].OccurredAt.Sub(group[i-1].OccurredAt).Hours() / 24)
		if days > 0 {
			intervals = append(intervals, days)
		}
	}
	if len(intervals) == 0 {
		return nil
	}

	meanInterval := 0.0
	for _, d := range intervals {
		meanInterval += d
	}
	meanInterval /= float64(len(intervals))

	frequency, confidence := classifyInterval(meanInterval)
	if frequency == "" || confidence < minConfidence {
		return nil
	}

	last := group[len(group)-1]
	period := int(frequency.CanonicalDays())
	return &model.Subscription{
		OwnerID:      last.OwnerID,
		Merchant:     last.DisplayMerchant,
		MerchantKey:  subscriptionMerchantKey(last),
		Amount:       math.Round(mean*100) / 100,
		Frequency:    frequency,
		Confidence:   math.Round(confidence*100) / 100,
		NextExpected: last.OccurredAt.AddDate(0, 0, period),
		LastSeen:     last.OccurredAt,
		Occurrences:  len(group),
	}
}

// classifyInterval maps a mean interval in days onto a frequency band and
// scores how close it sits to the band's canonical period.
func classifyInterval(meanInterval float64) (model.Frequency, float64) {
	for _, band := range frequencyBands {
		if meanInterval >= band.min && meanInterval <= band.max {
			period := band.frequency.CanonicalDays()
			confidence := 1 - math.Abs(meanInterval-period)/period
			return band.frequency, confidence
		}
	}
	return "", 0
}
