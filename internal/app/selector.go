package app

import (
	"hotel_policy/internal/domain"
)

// MostBeneficialPaymentTerm reduces one rate plan's per-night resolution to a
// single winning payment term. Candidates are the distinct codes appearing in
// the daily output; when at least one night fell through to the default
// (daily-specific coverage shorter than the stay), every configured term
// setting widens the pool, not just the default one. The winner is the
// candidate with the highest payOnConfirmation. No resolvable candidate is
// an absence, not an error.
func MostBeneficialPaymentTerm(daily []domain.DailyPolicy, settings []domain.PaymentTermSetting, terms []domain.HotelPaymentTerm) (domain.HotelPaymentTerm, bool) {
	byCode := make(map[string]domain.HotelPaymentTerm, len(terms))
	byID := make(map[int64]domain.HotelPaymentTerm, len(terms))
	for _, t := range terms {
		byCode[t.Code] = t
		byID[t.ID] = t
	}

	seen := make(map[int64]bool)
	var candidates []domain.HotelPaymentTerm
	add := func(t domain.HotelPaymentTerm) {
		if !seen[t.ID] {
			seen[t.ID] = true
			candidates = append(candidates, t)
		}
	}

	dailySpecific := 0
	for _, d := range daily {
		if d.Adjusted {
			dailySpecific++
		}
		if d.Code == "" {
			continue
		}
		if t, ok := byCode[d.Code]; ok {
			add(t)
		}
	}
	if dailySpecific < len(daily) {
		for _, s := range settings {
			if t, ok := byID[s.HotelPaymentTermID]; ok {
				add(t)
			}
		}
	}

	if len(candidates) == 0 {
		return domain.HotelPaymentTerm{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.PayOnConfirmation.GreaterThan(best.PayOnConfirmation) ||
			(c.PayOnConfirmation.Equal(best.PayOnConfirmation) && c.ID < best.ID) {
			best = c
		}
	}
	return best, true
}

// MostBeneficialCxlPolicy picks the single best guest-facing policy among the
// candidates gathered across all nights and rate plans of a booking. A fully
// flexible policy (hourPrior <= 0) always wins; otherwise the least
// restrictive remaining one, i.e. the maximum hourPrior. Code order breaks
// exact ties so repeated calls yield the same winner.
func MostBeneficialCxlPolicy(candidates []domain.HotelCancellationPolicy) (domain.HotelCancellationPolicy, bool) {
	if len(candidates) == 0 {
		return domain.HotelCancellationPolicy{}, false
	}

	var best *domain.HotelCancellationPolicy
	better := func(c, b domain.HotelCancellationPolicy) bool {
		cFlex, bFlex := c.HourPrior <= 0, b.HourPrior <= 0
		switch {
		case cFlex != bFlex:
			return cFlex
		case c.HourPrior != b.HourPrior:
			if cFlex {
				return c.HourPrior < b.HourPrior
			}
			return c.HourPrior > b.HourPrior
		default:
			return c.Code < b.Code
		}
	}
	for i := range candidates {
		if best == nil || better(candidates[i], *best) {
			best = &candidates[i]
		}
	}
	return *best, true
}
