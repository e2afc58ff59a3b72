package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_policy/internal/domain"
)

// capability bundles the strategy hooks that let payment-term and
// cancellation-policy resolution share one algorithm: a follow-flag, a
// default lookup, and a daily-override lookup against the source rate plan.
type capability struct {
	name        string
	flag        domain.FollowFlag
	defaultCode func(ctx context.Context, sourceID int64) (string, error)
	overrides   func(ctx context.Context, sourceID int64, dates []string) (map[string]string, error)
}

// PolicyResolver computes per-night effective policy codes for a rate plan.
// It is a pure read path: no mutation, safe to compute repeatedly.
type PolicyResolver struct {
	repo domain.PolicyRepository
}

func NewPolicyResolver(repo domain.PolicyRepository) *PolicyResolver {
	return &PolicyResolver{repo: repo}
}

// ResolveDailyCxlPolicies resolves the effective cancellation-policy code for
// every night of the stay. The rate plan's own code field is the default;
// daily rows win per date; master indirection applies when the follow-flag
// opts in.
func (r *PolicyResolver) ResolveDailyCxlPolicies(ctx context.Context, plan domain.RatePlan, dates []string) ([]domain.DailyPolicy, error) {
	c := capability{
		name: "cxl_policy",
		flag: domain.FollowCxlPolicy,
		defaultCode: func(ctx context.Context, sourceID int64) (string, error) {
			if sourceID == plan.ID {
				return plan.CxlPolicyCode, nil
			}
			master, err := r.repo.GetRatePlanByID(ctx, plan.HotelID, sourceID)
			if err != nil {
				return "", err
			}
			if master == nil {
				return "", fmt.Errorf("%w: master rate plan %d", domain.ErrNotFound, sourceID)
			}
			return master.CxlPolicyCode, nil
		},
		overrides: func(ctx context.Context, sourceID int64, dates []string) (map[string]string, error) {
			rows, err := r.repo.GetDailyCxlPolicies(ctx, plan.HotelID, sourceID, dates)
			if err != nil {
				return nil, err
			}
			return overrideMap(rows), nil
		},
	}
	return r.resolveDaily(ctx, plan.HotelID, plan.ID, dates, c)
}

// ResolveDailyPaymentTerms resolves the effective payment-term code per night.
// termsByID maps the hotel's payment-term catalog so the isDefault setting's
// term id can be expressed as a code. Nights with no default and no override
// resolve to an empty code; the selector skips those.
func (r *PolicyResolver) ResolveDailyPaymentTerms(ctx context.Context, plan domain.RatePlan, dates []string, termsByID map[int64]domain.HotelPaymentTerm) ([]domain.DailyPolicy, error) {
	c := capability{
		name: "payment_term",
		flag: domain.FollowPaymentTerm,
		defaultCode: func(ctx context.Context, sourceID int64) (string, error) {
			settings, err := r.repo.GetPaymentTermSettings(ctx, plan.HotelID, sourceID)
			if err != nil {
				return "", err
			}
			for _, s := range settings {
				if !s.IsDefault {
					continue
				}
				if t, ok := termsByID[s.HotelPaymentTermID]; ok {
					return t.Code, nil
				}
			}
			return "", nil
		},
		overrides: func(ctx context.Context, sourceID int64, dates []string) (map[string]string, error) {
			rows, err := r.repo.GetDailyPaymentTerms(ctx, plan.HotelID, sourceID, dates)
			if err != nil {
				return nil, err
			}
			return overrideMap(rows), nil
		},
	}
	return r.resolveDaily(ctx, plan.HotelID, plan.ID, dates, c)
}

// resolveDaily is the shared default + daily-override + indirection walk.
// Once indirection is active the caller's own override rows are never
// consulted; the caller inherits the source's resolved value at each date.
func (r *PolicyResolver) resolveDaily(ctx context.Context, hotelID, ratePlanID int64, dates []string, c capability) ([]domain.DailyPolicy, error) {
	sourceID := ratePlanID

	ds, err := r.repo.GetDerivedSetting(ctx, hotelID, ratePlanID)
	if err != nil {
		return nil, err
	}
	if ds != nil && ds.Follows(c.flag) {
		if ds.MasterRatePlanID > 0 {
			sourceID = ds.MasterRatePlanID
		} else {
			// Indirection enabled but no master to resolve against; fall back
			// to the rate plan itself rather than failing the stay.
			log.Warn().
				Int64("hotel_id", hotelID).
				Int64("rate_plan_id", ratePlanID).
				Str("capability", c.name).
				Msg("derived setting without master, resolving against self")
		}
	}

	def, err := c.defaultCode(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	over, err := c.overrides(ctx, sourceID, dates)
	if err != nil {
		return nil, err
	}

	out := make([]domain.DailyPolicy, 0, len(dates))
	for _, d := range dates {
		if code, ok := over[d]; ok {
			out = append(out, domain.DailyPolicy{Date: d, RatePlanID: ratePlanID, Code: code, Adjusted: true})
			continue
		}
		out = append(out, domain.DailyPolicy{Date: d, RatePlanID: ratePlanID, Code: def, Adjusted: false})
	}
	return out, nil
}

func overrideMap(rows []domain.DailyOverride) map[string]string {
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		m[row.Date] = row.Code
	}
	return m
}
