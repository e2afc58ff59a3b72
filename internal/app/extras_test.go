package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_policy/internal/app"
	"hotel_policy/internal/domain"
)

func extra(ratePlanID, extrasID int64, typ string) domain.ExtraService {
	return domain.ExtraService{HotelID: 1, RatePlanID: ratePlanID, ExtrasID: extrasID, Type: typ}
}

func TestExtrasResolve_DefaultsOnly(t *testing.T) {
	repo := &fakeRepo{
		plans: []domain.RatePlan{plan(10, "RP1", "FLEX")},
		extras: map[int64][]domain.ExtraService{10: {
			extra(10, 1, domain.ExtraTypeIncluded),
			extra(10, 2, domain.ExtraTypeMandatory),
			extra(10, 3, domain.ExtraTypeExtra),
		}},
	}
	r := app.NewExtrasResolver(repo)

	res, err := r.Resolve(context.Background(), plan(10, "RP1", "FLEX"), stay3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, res.IDsFromDefault)
	assert.Empty(t, res.CodesFromDailyOverride)
	assert.Equal(t, domain.ExtraTypeIncluded, res.TypeByID[1])
	assert.Equal(t, domain.ExtraTypeMandatory, res.TypeByID[2])
	assert.Equal(t, domain.ExtraTypeExtra, res.TypeByID[3])
}

func TestExtrasResolve_DailyOverrideReplacesDefaultsForItsDate(t *testing.T) {
	// One-night stay with an override row: the id-based defaults must not
	// appear at all, only the override's code list.
	repo := &fakeRepo{
		plans: []domain.RatePlan{plan(10, "RP1", "FLEX")},
		extras: map[int64][]domain.ExtraService{10: {
			extra(10, 1, domain.ExtraTypeIncluded),
			extra(10, 3, domain.ExtraTypeExtra),
		}},
		dailyExtras: map[int64]map[string][]string{10: {"2025-06-09": {"SPA", "BRKF"}}},
	}
	r := app.NewExtrasResolver(repo)

	res, err := r.Resolve(context.Background(), plan(10, "RP1", "FLEX"), []string{"2025-06-09"})
	require.NoError(t, err)
	assert.Empty(t, res.IDsFromDefault)
	assert.Equal(t, []string{"BRKF", "SPA"}, res.CodesFromDailyOverride)
}

func TestExtrasResolve_MixedDates(t *testing.T) {
	repo := &fakeRepo{
		plans: []domain.RatePlan{plan(10, "RP1", "FLEX")},
		extras: map[int64][]domain.ExtraService{10: {
			extra(10, 1, domain.ExtraTypeIncluded),
		}},
		dailyExtras: map[int64]map[string][]string{10: {"2025-06-10": {"SPA"}}},
	}
	r := app.NewExtrasResolver(repo)

	res, err := r.Resolve(context.Background(), plan(10, "RP1", "FLEX"), stay3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, res.IDsFromDefault)
	assert.Equal(t, []string{"SPA"}, res.CodesFromDailyOverride)
}

func TestExtrasResolve_MasterIndirectionForIncludedOnly(t *testing.T) {
	// RP2 follows RP1 for amenities: included/mandatory come from the master,
	// extra-type rows stay scoped to RP2 itself.
	repo := &fakeRepo{
		plans: []domain.RatePlan{plan(10, "RP1", "FLEX"), plan(20, "RP2", "FLEX")},
		derived: map[int64]domain.DerivedSetting{
			20: {HotelID: 1, RatePlanID: 20, MasterRatePlanID: 10, FollowDailyIncludedAmenity: true},
		},
		extras: map[int64][]domain.ExtraService{
			10: {
				extra(10, 1, domain.ExtraTypeIncluded),
				extra(10, 9, domain.ExtraTypeExtra), // master's extras must not leak
			},
			20: {
				extra(20, 5, domain.ExtraTypeExtra),
				extra(20, 6, domain.ExtraTypeIncluded), // own included ignored under indirection
			},
		},
	}
	r := app.NewExtrasResolver(repo)

	res, err := r.Resolve(context.Background(), plan(20, "RP2", "FLEX"), stay3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 5}, res.IDsFromDefault)
	assert.Equal(t, domain.ExtraTypeIncluded, res.TypeByID[1])
	assert.Equal(t, domain.ExtraTypeExtra, res.TypeByID[5])
}

func TestExtrasResolve_AsymmetricDailyOverrideScoping(t *testing.T) {
	// Under indirection, a source-keyed daily row replaces included/mandatory
	// while an own-keyed daily row replaces the extra set, independently.
	repo := &fakeRepo{
		plans: []domain.RatePlan{plan(10, "RP1", "FLEX"), plan(20, "RP2", "FLEX")},
		derived: map[int64]domain.DerivedSetting{
			20: {HotelID: 1, RatePlanID: 20, MasterRatePlanID: 10, FollowDailyIncludedAmenity: true},
		},
		extras: map[int64][]domain.ExtraService{
			10: {extra(10, 1, domain.ExtraTypeIncluded)},
			20: {extra(20, 5, domain.ExtraTypeExtra)},
		},
		dailyExtras: map[int64]map[string][]string{
			10: {"2025-06-09": {"SPA"}},
			20: {"2025-06-09": {"LATE_CHECKOUT"}},
		},
	}
	r := app.NewExtrasResolver(repo)

	res, err := r.Resolve(context.Background(), plan(20, "RP2", "FLEX"), []string{"2025-06-09"})
	require.NoError(t, err)
	assert.Empty(t, res.IDsFromDefault)
	assert.Equal(t, []string{"LATE_CHECKOUT", "SPA"}, res.CodesFromDailyOverride)
	assert.Equal(t, domain.ExtraTypeIncluded, res.TypeByCode["SPA"])
	assert.Equal(t, domain.ExtraTypeExtra, res.TypeByCode["LATE_CHECKOUT"])
}

func TestAmenityService_ReconcilesAgainstCatalog(t *testing.T) {
	repo := &fakeRepo{
		plans: []domain.RatePlan{plan(10, "RP1", "FLEX")},
		extras: map[int64][]domain.ExtraService{10: {
			extra(10, 1, domain.ExtraTypeIncluded),
		}},
		dailyExtras: map[int64]map[string][]string{10: {"2025-06-10": {"SPA"}}},
	}
	cat := &fakeCatalog{
		byID:   map[int64]domain.AmenityEntry{1: {ID: 1, Code: "BRKF", Name: "Breakfast"}},
		byCode: map[string]domain.AmenityEntry{"SPA": {ID: 7, Code: "SPA", Name: "Spa access"}},
	}
	svc := app.NewAmenityService(repo, app.NewExtrasResolver(repo), cat)

	view, err := svc.ListAmenities(context.Background(), 1, "RP1", "2025-06-09", "2025-06-11")
	require.NoError(t, err)
	require.Len(t, view.Amenities, 2)
	assert.Equal(t, "BRKF", view.Amenities[0].Code)
	assert.Equal(t, domain.ExtraTypeIncluded, view.Amenities[0].Type)
	assert.Equal(t, "SPA", view.Amenities[1].Code)
	assert.Equal(t, "Spa access", view.Amenities[1].Name)
}

func TestAmenityService_UnknownRatePlan(t *testing.T) {
	svc := app.NewAmenityService(&fakeRepo{}, app.NewExtrasResolver(&fakeRepo{}), &fakeCatalog{})
	_, err := svc.ListAmenities(context.Background(), 1, "NOPE", "2025-06-09", "2025-06-11")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
