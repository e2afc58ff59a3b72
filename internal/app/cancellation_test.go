package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_policy/internal/app"
	"hotel_policy/internal/domain"
)

func cxlFixture() *fakeRepo {
	return &fakeRepo{
		plans: []domain.RatePlan{plan(10, "RP1", "STRICT"), plan(20, "RP2", "FLEX")},
		dailyCxl: map[int64]map[string]string{
			10: {"2025-06-10": "SEMI"},
		},
		cxlPolicies: []domain.HotelCancellationPolicy{
			{HotelID: 1, Code: "STRICT", HourPrior: 48, Name: "Strict"},
			{HotelID: 1, Code: "SEMI", HourPrior: 24, Name: "Semi-flexible"},
			{
				HotelID: 1, Code: "FLEX", HourPrior: 0, Name: "Flexible",
				Description: "Free cancellation until arrival",
				Translations: []domain.CxlPolicyTranslation{
					{Lang: "ja", Name: "フレックス", Description: "到着まで無料キャンセル"},
				},
			},
		},
	}
}

func newCxlService(repo *fakeRepo) *app.CancellationPolicyService {
	return app.NewCancellationPolicyService(repo, app.NewPolicyResolver(repo), &fakeCache{}, time.Minute)
}

func TestResolveMostBeneficial_FlexibleWinsAcrossPlans(t *testing.T) {
	svc := newCxlService(cxlFixture())

	view, err := svc.ResolveMostBeneficial(context.Background(), 1, []string{"RP1", "RP2"}, "2025-06-09", "2025-06-11", "en")
	require.NoError(t, err)
	assert.Equal(t, "FLEX", view.Code)
	assert.Equal(t, 0, view.HourPrior)
	assert.Equal(t, "Flexible", view.Name)

	// Per-night breakdown covers both plans, overrides included.
	require.Len(t, view.Daily, 6)
	byPlanDate := make(map[int64]map[string]string)
	for _, d := range view.Daily {
		if byPlanDate[d.RatePlanID] == nil {
			byPlanDate[d.RatePlanID] = make(map[string]string)
		}
		byPlanDate[d.RatePlanID][d.Date] = d.Code
	}
	assert.Equal(t, "STRICT", byPlanDate[10]["2025-06-09"])
	assert.Equal(t, "SEMI", byPlanDate[10]["2025-06-10"])
	assert.Equal(t, "FLEX", byPlanDate[20]["2025-06-10"])
}

func TestResolveMostBeneficial_FlexibleDefaultSurvivesStrictOverride(t *testing.T) {
	// FLEX default with a STRICT override on the middle night: per-date
	// resolution is [FLEX, STRICT, FLEX] and FLEX still wins the stay.
	repo := &fakeRepo{
		plans:    []domain.RatePlan{plan(10, "RP1", "FLEX")},
		dailyCxl: map[int64]map[string]string{10: {"2025-06-10": "STRICT"}},
		cxlPolicies: []domain.HotelCancellationPolicy{
			{HotelID: 1, Code: "FLEX", HourPrior: 0},
			{HotelID: 1, Code: "STRICT", HourPrior: 72},
		},
	}
	svc := newCxlService(repo)

	view, err := svc.ResolveMostBeneficial(context.Background(), 1, []string{"RP1"}, "2025-06-09", "2025-06-11", "en")
	require.NoError(t, err)
	assert.Equal(t, "FLEX", view.Code)

	require.Len(t, view.Daily, 3)
	assert.Equal(t, "FLEX", view.Daily[0].Code)
	assert.False(t, view.Daily[0].Adjusted)
	assert.Equal(t, "STRICT", view.Daily[1].Code)
	assert.True(t, view.Daily[1].Adjusted)
	assert.Equal(t, "FLEX", view.Daily[2].Code)
}

func TestResolveMostBeneficial_SinglePlanMaxHourPrior(t *testing.T) {
	svc := newCxlService(cxlFixture())

	// RP1 only: STRICT default with a SEMI override on the middle night.
	// Without a flexible candidate the largest hourPrior wins.
	view, err := svc.ResolveMostBeneficial(context.Background(), 1, []string{"RP1"}, "2025-06-09", "2025-06-11", "en")
	require.NoError(t, err)
	assert.Equal(t, "STRICT", view.Code)
	assert.Equal(t, 48, view.HourPrior)
}

func TestResolveMostBeneficial_TranslationOverlayOnWinnerOnly(t *testing.T) {
	svc := newCxlService(cxlFixture())

	view, err := svc.ResolveMostBeneficial(context.Background(), 1, []string{"RP2"}, "2025-06-09", "2025-06-11", "ja")
	require.NoError(t, err)
	assert.Equal(t, "FLEX", view.Code)
	assert.Equal(t, "フレックス", view.Name)
	assert.Equal(t, "到着まで無料キャンセル", view.Description)
	assert.Equal(t, "ja", view.Language)
}

func TestResolveMostBeneficial_UnknownLangKeepsBaseFields(t *testing.T) {
	svc := newCxlService(cxlFixture())

	view, err := svc.ResolveMostBeneficial(context.Background(), 1, []string{"RP2"}, "2025-06-09", "2025-06-11", "de")
	require.NoError(t, err)
	assert.Equal(t, "Flexible", view.Name)
	assert.Equal(t, "Free cancellation until arrival", view.Description)
}

func TestResolveMostBeneficial_UnknownRatePlan(t *testing.T) {
	svc := newCxlService(cxlFixture())
	_, err := svc.ResolveMostBeneficial(context.Background(), 1, []string{"NOPE"}, "2025-06-09", "2025-06-11", "en")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveMostBeneficial_InvalidRange(t *testing.T) {
	svc := newCxlService(cxlFixture())
	_, err := svc.ResolveMostBeneficial(context.Background(), 1, []string{"RP1"}, "2025-06-11", "2025-06-09", "en")
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}
