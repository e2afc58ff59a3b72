package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_policy/internal/domain"
)

// CancellationPolicyService resolves the single most-beneficial cancellation
// policy across all nights and rate plans of a booking, with the translation
// overlay applied to the winner only.
type CancellationPolicyService struct {
	repo     domain.PolicyRepository
	resolver *PolicyResolver
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCancellationPolicyService(repo domain.PolicyRepository, resolver *PolicyResolver, cache domain.Cache, ttl time.Duration) *CancellationPolicyService {
	return &CancellationPolicyService{repo: repo, resolver: resolver, cache: cache, cacheTTL: ttl}
}

func (s *CancellationPolicyService) ResolveMostBeneficial(ctx context.Context, hotelID int64, ratePlanCodes []string, fromDate, toDate, lang string) (domain.CancellationPolicyView, error) {
	dates, err := domain.ExpandDates(fromDate, toDate)
	if err != nil {
		return domain.CancellationPolicyView{}, err
	}

	codes := normalizeCodes(ratePlanCodes)
	key := fmt.Sprintf("cxlpolicy:%d:%s:%s:%s:%s", hotelID, strings.Join(codes, ","), fromDate, toDate, lang)
	var cached domain.CancellationPolicyView
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	plans, err := s.repo.GetRatePlansByCodes(ctx, hotelID, codes)
	if err != nil {
		return domain.CancellationPolicyView{}, err
	}
	if missing := missingCodes(codes, plans); len(missing) > 0 {
		return domain.CancellationPolicyView{}, fmt.Errorf("%w: rate plan %s", domain.ErrNotFound, strings.Join(missing, ","))
	}

	// Gather per-night resolutions per rate plan; a failing plan is excluded,
	// never fatal for its siblings.
	var (
		daily      []domain.DailyPolicy
		candidates []string
		seen       = make(map[string]bool)
	)
	for _, plan := range plans {
		res, rerr := s.resolver.ResolveDailyCxlPolicies(ctx, plan, dates)
		if rerr != nil {
			log.Warn().
				Int64("hotel_id", hotelID).
				Str("rate_plan", plan.Code).
				Err(rerr).
				Msg("cancellation policy resolution failed, excluding rate plan")
			continue
		}
		daily = append(daily, res...)
		for _, d := range res {
			if d.Code != "" && !seen[d.Code] {
				seen[d.Code] = true
				candidates = append(candidates, d.Code)
			}
		}
	}
	if len(candidates) == 0 {
		return domain.CancellationPolicyView{}, fmt.Errorf("%w: no cancellation policy", domain.ErrNotFound)
	}
	sort.Strings(candidates)

	policies, err := s.repo.GetHotelCxlPolicies(ctx, hotelID, candidates)
	if err != nil {
		return domain.CancellationPolicyView{}, err
	}
	winner, ok := MostBeneficialCxlPolicy(policies)
	if !ok {
		return domain.CancellationPolicyView{}, fmt.Errorf("%w: no cancellation policy", domain.ErrNotFound)
	}
	winner = winner.Translate(lang)

	view := domain.CancellationPolicyView{
		HotelID:     hotelID,
		Code:        winner.Code,
		HourPrior:   winner.HourPrior,
		Name:        winner.Name,
		Description: winner.Description,
		Language:    lang,
		Daily:       daily,
	}
	_ = s.cache.Set(ctx, key, view, int(s.cacheTTL.Seconds()))
	return view, nil
}
