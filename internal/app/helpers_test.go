package app_test

import (
	"context"

	"hotel_policy/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	plans          []domain.RatePlan
	derived        map[int64]domain.DerivedSetting
	termSettings   map[int64][]domain.PaymentTermSetting
	extras         map[int64][]domain.ExtraService
	dailyTerms     map[int64]map[string]string
	dailyCxl       map[int64]map[string]string
	dailyExtras    map[int64]map[string][]string
	terms          []domain.HotelPaymentTerm
	cxlPolicies    []domain.HotelCancellationPolicy
	methods        []domain.GlobalPaymentMethod
	methodSettings []domain.HotelPaymentMethodSetting
}

func (f *fakeRepo) GetRatePlansByCodes(ctx context.Context, hotelID int64, codes []string) ([]domain.RatePlan, error) {
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[c] = true
	}
	var out []domain.RatePlan
	for _, p := range f.plans {
		if p.HotelID == hotelID && want[p.Code] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetRatePlanByID(ctx context.Context, hotelID, ratePlanID int64) (*domain.RatePlan, error) {
	for _, p := range f.plans {
		if p.HotelID == hotelID && p.ID == ratePlanID {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetDerivedSetting(ctx context.Context, hotelID, ratePlanID int64) (*domain.DerivedSetting, error) {
	if ds, ok := f.derived[ratePlanID]; ok {
		cp := ds
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListDerivedSettings(ctx context.Context, hotelID int64, ratePlanIDs []int64, flag domain.FollowFlag) ([]domain.DerivedSetting, error) {
	var out []domain.DerivedSetting
	for _, id := range ratePlanIDs {
		if ds, ok := f.derived[id]; ok && ds.Follows(flag) {
			out = append(out, ds)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetPaymentTermSettings(ctx context.Context, hotelID, ratePlanID int64) ([]domain.PaymentTermSetting, error) {
	return f.termSettings[ratePlanID], nil
}

func (f *fakeRepo) GetExtraServices(ctx context.Context, hotelID, ratePlanID int64) ([]domain.ExtraService, error) {
	return f.extras[ratePlanID], nil
}

func (f *fakeRepo) GetDailyPaymentTerms(ctx context.Context, hotelID, ratePlanID int64, dates []string) ([]domain.DailyOverride, error) {
	return overridesFor(f.dailyTerms[ratePlanID], ratePlanID, dates), nil
}

func (f *fakeRepo) GetDailyCxlPolicies(ctx context.Context, hotelID, ratePlanID int64, dates []string) ([]domain.DailyOverride, error) {
	return overridesFor(f.dailyCxl[ratePlanID], ratePlanID, dates), nil
}

func (f *fakeRepo) GetDailyExtraServices(ctx context.Context, hotelID, ratePlanID int64, dates []string) ([]domain.DailyExtraService, error) {
	byDate := f.dailyExtras[ratePlanID]
	var out []domain.DailyExtraService
	for _, d := range dates {
		if codes, ok := byDate[d]; ok {
			out = append(out, domain.DailyExtraService{RatePlanID: ratePlanID, Date: d, Codes: codes})
		}
	}
	return out, nil
}

func (f *fakeRepo) GetHotelPaymentTerms(ctx context.Context, hotelID int64) ([]domain.HotelPaymentTerm, error) {
	return f.terms, nil
}

func (f *fakeRepo) GetHotelCxlPolicies(ctx context.Context, hotelID int64, codes []string) ([]domain.HotelCancellationPolicy, error) {
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[c] = true
	}
	var out []domain.HotelCancellationPolicy
	for _, p := range f.cxlPolicies {
		if want[p.Code] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetGlobalPaymentMethods(ctx context.Context, codes []string) ([]domain.GlobalPaymentMethod, error) {
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[c] = true
	}
	var out []domain.GlobalPaymentMethod
	for _, m := range f.methods {
		if want[m.Code] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetHotelPaymentMethodSettings(ctx context.Context, hotelID int64, methodIDs []int64) ([]domain.HotelPaymentMethodSetting, error) {
	want := make(map[int64]bool, len(methodIDs))
	for _, id := range methodIDs {
		want[id] = true
	}
	var out []domain.HotelPaymentMethodSetting
	for _, s := range f.methodSettings {
		if s.HotelID == hotelID && want[s.GlobalMethodID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func overridesFor(byDate map[string]string, ratePlanID int64, dates []string) []domain.DailyOverride {
	var out []domain.DailyOverride
	for _, d := range dates {
		if code, ok := byDate[d]; ok {
			out = append(out, domain.DailyOverride{RatePlanID: ratePlanID, Date: d, Code: code})
		}
	}
	return out
}

type fakeCache struct {
	store map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	return false, nil // always miss; keeps tests hitting the repo
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error { return nil }
func (c *fakeCache) Del(ctx context.Context, key string) error                    { return nil }

type fakeCatalog struct {
	byID   map[int64]domain.AmenityEntry
	byCode map[string]domain.AmenityEntry
}

func (c *fakeCatalog) GetByIDs(ctx context.Context, ids []int64) ([]domain.AmenityEntry, error) {
	var out []domain.AmenityEntry
	for _, id := range ids {
		if e, ok := c.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *fakeCatalog) GetByCodes(ctx context.Context, codes []string) ([]domain.AmenityEntry, error) {
	var out []domain.AmenityEntry
	for _, code := range codes {
		if e, ok := c.byCode[code]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}
