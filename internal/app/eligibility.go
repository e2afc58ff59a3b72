package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_policy/internal/domain"
)

// PaymentMethodService assembles the payment methods a guest may use for a
// stay: most-beneficial payment term per rate plan, supported-method union,
// catalog join, hotel activation filter, and per-provider metadata
// sanitization.
type PaymentMethodService struct {
	repo     domain.PolicyRepository
	resolver *PolicyResolver
	cache    domain.Cache
	cacheTTL time.Duration
	workers  int64
}

func NewPaymentMethodService(repo domain.PolicyRepository, resolver *PolicyResolver, cache domain.Cache, ttl time.Duration, workers int) *PaymentMethodService {
	if workers <= 0 {
		workers = 4
	}
	return &PaymentMethodService{repo: repo, resolver: resolver, cache: cache, cacheTTL: ttl, workers: int64(workers)}
}

func (s *PaymentMethodService) ListEligibleMethods(ctx context.Context, hotelID int64, ratePlanCodes []string, fromDate, toDate string) (domain.PaymentMethodsView, error) {
	dates, err := domain.ExpandDates(fromDate, toDate)
	if err != nil {
		return domain.PaymentMethodsView{}, err
	}

	codes := normalizeCodes(ratePlanCodes)
	key := fmt.Sprintf("paymethods:%d:%s:%s:%s", hotelID, strings.Join(codes, ","), fromDate, toDate)
	var cached domain.PaymentMethodsView
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	plans, err := s.repo.GetRatePlansByCodes(ctx, hotelID, codes)
	if err != nil {
		return domain.PaymentMethodsView{}, err
	}
	if missing := missingCodes(codes, plans); len(missing) > 0 {
		return domain.PaymentMethodsView{}, fmt.Errorf("%w: rate plan %s", domain.ErrNotFound, strings.Join(missing, ","))
	}

	terms, err := s.repo.GetHotelPaymentTerms(ctx, hotelID)
	if err != nil {
		return domain.PaymentMethodsView{}, err
	}
	termsByID := make(map[int64]domain.HotelPaymentTerm, len(terms))
	for _, t := range terms {
		termsByID[t.ID] = t
	}

	methodCodes, err := s.collectMethodCodes(ctx, plans, dates, terms, termsByID)
	if err != nil {
		return domain.PaymentMethodsView{}, err
	}
	if len(methodCodes) == 0 {
		return domain.PaymentMethodsView{}, fmt.Errorf("%w: no payment method", domain.ErrNotFound)
	}

	methods, err := s.repo.GetGlobalPaymentMethods(ctx, methodCodes)
	if err != nil {
		return domain.PaymentMethodsView{}, err
	}
	methodIDs := make([]int64, 0, len(methods))
	for _, m := range methods {
		methodIDs = append(methodIDs, m.ID)
	}
	settings, err := s.repo.GetHotelPaymentMethodSettings(ctx, hotelID, methodIDs)
	if err != nil {
		return domain.PaymentMethodsView{}, err
	}
	active := make(map[int64][]domain.HotelPaymentMethodSetting)
	for _, st := range settings {
		if st.Status == domain.MethodStatusActive {
			active[st.GlobalMethodID] = append(active[st.GlobalMethodID], st)
		}
	}
	if len(active) == 0 {
		return domain.PaymentMethodsView{}, fmt.Errorf("%w: no active payment method setting", domain.ErrNotFound)
	}

	view := domain.PaymentMethodsView{
		HotelID:       hotelID,
		RatePlanCodes: codes,
		FromDate:      fromDate,
		ToDate:        toDate,
	}
	for _, m := range methods {
		rows, ok := active[m.ID]
		if !ok {
			continue
		}
		entry := domain.EligibleMethod{Code: m.Code, Name: m.Name}
		sort.Slice(rows, func(i, j int) bool { return rows[i].ProviderCode < rows[j].ProviderCode })
		for _, row := range rows {
			entry.Providers = append(entry.Providers, domain.EligibleProvider{
				ProviderCode: row.ProviderCode,
				Metadata:     sanitizeMetadata(row.ProviderCode, row.Metadata),
			})
			// Generic "other" methods carry their display name in metadata.
			if m.Code == "OTHER" {
				if name := row.Metadata["publicDisplayName"]; name != "" {
					entry.Name = name
				}
			}
		}
		view.Methods = append(view.Methods, entry)
	}
	sort.Slice(view.Methods, func(i, j int) bool { return view.Methods[i].Code < view.Methods[j].Code })

	_ = s.cache.Set(ctx, key, view, int(s.cacheTTL.Seconds()))
	return view, nil
}

// collectMethodCodes resolves each rate plan's most-beneficial term under a
// bounded worker pool and unions the supported method codes. A failing rate
// plan yields absence and never aborts its siblings; the batch boundary
// decides whether the aggregate is fatal.
func (s *PaymentMethodService) collectMethodCodes(ctx context.Context, plans []domain.RatePlan, dates []string, terms []domain.HotelPaymentTerm, termsByID map[int64]domain.HotelPaymentTerm) ([]string, error) {
	sem := semaphore.NewWeighted(s.workers)
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		union = make(map[string]bool)
	)
	for _, plan := range plans {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(plan domain.RatePlan) {
			defer wg.Done()
			defer sem.Release(1)

			methodCodes, err := s.methodCodesForPlan(ctx, plan, dates, terms, termsByID)
			if err != nil {
				log.Warn().
					Int64("hotel_id", plan.HotelID).
					Str("rate_plan", plan.Code).
					Err(err).
					Msg("payment term resolution failed, excluding rate plan")
				return
			}
			mu.Lock()
			for _, c := range methodCodes {
				union[c] = true
			}
			mu.Unlock()
		}(plan)
	}
	wg.Wait()

	out := make([]string, 0, len(union))
	for c := range union {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (s *PaymentMethodService) methodCodesForPlan(ctx context.Context, plan domain.RatePlan, dates []string, terms []domain.HotelPaymentTerm, termsByID map[int64]domain.HotelPaymentTerm) ([]string, error) {
	settings, err := s.repo.GetPaymentTermSettings(ctx, plan.HotelID, plan.ID)
	if err != nil {
		return nil, err
	}
	daily, err := s.resolver.ResolveDailyPaymentTerms(ctx, plan, dates, termsByID)
	if err != nil {
		return nil, err
	}
	winner, ok := MostBeneficialPaymentTerm(daily, settings, terms)
	if !ok {
		// No candidate term resolved for this plan; absence, not an error.
		return nil, nil
	}
	var out []string
	for _, st := range settings {
		if st.HotelPaymentTermID == winner.ID && len(st.MethodCodes) > 0 {
			out = append(out, st.MethodCodes...)
		}
	}
	return out, nil
}

func normalizeCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func missingCodes(requested []string, plans []domain.RatePlan) []string {
	have := make(map[string]bool, len(plans))
	for _, p := range plans {
		have[p.Code] = true
	}
	var missing []string
	for _, c := range requested {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
