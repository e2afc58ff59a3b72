package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"hotel_policy/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// placeholders renders "?,?,?" for n values.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func stringArgs(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func int64Args(vals []int64) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func (r *Repo) GetRatePlansByCodes(ctx context.Context, hotelID int64, codes []string) ([]domain.RatePlan, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	q := fmt.Sprintf(getRatePlansByCodesSQL, placeholders(len(codes)))
	args := append([]any{hotelID}, stringArgs(codes)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RatePlan
	for rows.Next() {
		var p domain.RatePlan
		if err := rows.Scan(&p.HotelID, &p.ID, &p.Code, &p.CxlPolicyCode); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetRatePlanByID(ctx context.Context, hotelID, ratePlanID int64) (*domain.RatePlan, error) {
	var p domain.RatePlan
	err := r.db.QueryRowContext(ctx, getRatePlanByIDSQL, hotelID, ratePlanID).
		Scan(&p.HotelID, &p.ID, &p.Code, &p.CxlPolicyCode)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetDerivedSetting(ctx context.Context, hotelID, ratePlanID int64) (*domain.DerivedSetting, error) {
	var ds domain.DerivedSetting
	err := r.db.QueryRowContext(ctx, getDerivedSettingSQL, hotelID, ratePlanID).
		Scan(&ds.HotelID, &ds.RatePlanID, &ds.MasterRatePlanID,
			&ds.FollowDailyCxlPolicy, &ds.FollowDailyIncludedAmenity)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// Compatibility shim: payment terms follow the cancellation-policy flag
	// until a dedicated column exists.
	ds.FollowDailyPaymentTerm = ds.FollowDailyCxlPolicy
	return &ds, nil
}

func (r *Repo) ListDerivedSettings(ctx context.Context, hotelID int64, ratePlanIDs []int64, flag domain.FollowFlag) ([]domain.DerivedSetting, error) {
	if len(ratePlanIDs) == 0 {
		return nil, nil
	}
	col := "follow_daily_cxl_policy"
	if flag == domain.FollowIncludedAmenity {
		col = "follow_daily_included_amenity"
	}
	q := fmt.Sprintf(listDerivedSettingsSQL, placeholders(len(ratePlanIDs)), col)
	args := append([]any{hotelID}, int64Args(ratePlanIDs)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DerivedSetting
	for rows.Next() {
		var ds domain.DerivedSetting
		if err := rows.Scan(&ds.HotelID, &ds.RatePlanID, &ds.MasterRatePlanID,
			&ds.FollowDailyCxlPolicy, &ds.FollowDailyIncludedAmenity); err != nil {
			return nil, err
		}
		ds.FollowDailyPaymentTerm = ds.FollowDailyCxlPolicy
		out = append(out, ds)
	}
	return out, rows.Err()
}

func (r *Repo) GetPaymentTermSettings(ctx context.Context, hotelID, ratePlanID int64) ([]domain.PaymentTermSetting, error) {
	rows, err := r.db.QueryContext(ctx, getPaymentTermSettingsSQL, hotelID, ratePlanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PaymentTermSetting
	for rows.Next() {
		var (
			s         domain.PaymentTermSetting
			codesJSON []byte
		)
		if err := rows.Scan(&s.HotelID, &s.RatePlanID, &s.HotelPaymentTermID, &s.IsDefault, &codesJSON); err != nil {
			return nil, err
		}
		if len(codesJSON) > 0 {
			if err := json.Unmarshal(codesJSON, &s.MethodCodes); err != nil {
				return nil, fmt.Errorf("payment term setting %d/%d method codes: %w", ratePlanID, s.HotelPaymentTermID, err)
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) GetExtraServices(ctx context.Context, hotelID, ratePlanID int64) ([]domain.ExtraService, error) {
	rows, err := r.db.QueryContext(ctx, getExtraServicesSQL, hotelID, ratePlanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ExtraService
	for rows.Next() {
		var e domain.ExtraService
		if err := rows.Scan(&e.HotelID, &e.RatePlanID, &e.ExtrasID, &e.Type); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) GetDailyPaymentTerms(ctx context.Context, hotelID, ratePlanID int64, dates []string) ([]domain.DailyOverride, error) {
	return r.dailyOverrides(ctx, getDailyPaymentTermsSQL, hotelID, ratePlanID, dates)
}

func (r *Repo) GetDailyCxlPolicies(ctx context.Context, hotelID, ratePlanID int64, dates []string) ([]domain.DailyOverride, error) {
	return r.dailyOverrides(ctx, getDailyCxlPoliciesSQL, hotelID, ratePlanID, dates)
}

func (r *Repo) dailyOverrides(ctx context.Context, tmpl string, hotelID, ratePlanID int64, dates []string) ([]domain.DailyOverride, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	q := fmt.Sprintf(tmpl, placeholders(len(dates)))
	args := append([]any{hotelID, ratePlanID}, stringArgs(dates)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailyOverride
	for rows.Next() {
		var o domain.DailyOverride
		if err := rows.Scan(&o.HotelID, &o.RatePlanID, &o.Date, &o.Code); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repo) GetDailyExtraServices(ctx context.Context, hotelID, ratePlanID int64, dates []string) ([]domain.DailyExtraService, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	q := fmt.Sprintf(getDailyExtraServicesSQL, placeholders(len(dates)))
	args := append([]any{hotelID, ratePlanID}, stringArgs(dates)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailyExtraService
	for rows.Next() {
		var (
			d         domain.DailyExtraService
			codesJSON []byte
		)
		if err := rows.Scan(&d.HotelID, &d.RatePlanID, &d.Date, &codesJSON); err != nil {
			return nil, err
		}
		if len(codesJSON) > 0 {
			if err := json.Unmarshal(codesJSON, &d.Codes); err != nil {
				return nil, fmt.Errorf("daily extra services %d/%s: %w", ratePlanID, d.Date, err)
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) GetHotelPaymentTerms(ctx context.Context, hotelID int64) ([]domain.HotelPaymentTerm, error) {
	rows, err := r.db.QueryContext(ctx, getHotelPaymentTermsSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelPaymentTerm
	for rows.Next() {
		var (
			t            domain.HotelPaymentTerm
			onConf, atHo string
		)
		if err := rows.Scan(&t.HotelID, &t.ID, &t.Code, &onConf, &atHo); err != nil {
			return nil, err
		}
		if t.PayOnConfirmation, err = decimal.NewFromString(onConf); err != nil {
			return nil, fmt.Errorf("payment term %s pay_on_confirmation: %w", t.Code, err)
		}
		if t.PayAtHotel, err = decimal.NewFromString(atHo); err != nil {
			return nil, fmt.Errorf("payment term %s pay_at_hotel: %w", t.Code, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) GetHotelCxlPolicies(ctx context.Context, hotelID int64, codes []string) ([]domain.HotelCancellationPolicy, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	q := fmt.Sprintf(getHotelCxlPoliciesSQL, placeholders(len(codes)))
	args := append([]any{hotelID}, stringArgs(codes)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelCancellationPolicy
	idx := make(map[string]int)
	for rows.Next() {
		var (
			p          domain.HotelCancellationPolicy
			name, desc sql.NullString
		)
		if err := rows.Scan(&p.HotelID, &p.Code, &p.HourPrior, &name, &desc); err != nil {
			return nil, err
		}
		p.Name = name.String
		p.Description = desc.String
		idx[p.Code] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	tq := fmt.Sprintf(getCxlPolicyI18nSQL, placeholders(len(codes)))
	trows, err := r.db.QueryContext(ctx, tq, args...)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var (
			code       string
			t          domain.CxlPolicyTranslation
			name, desc sql.NullString
		)
		if err := trows.Scan(&code, &t.Lang, &name, &desc); err != nil {
			return nil, err
		}
		t.Name = name.String
		t.Description = desc.String
		if i, ok := idx[code]; ok {
			out[i].Translations = append(out[i].Translations, t)
		}
	}
	return out, trows.Err()
}

func (r *Repo) GetGlobalPaymentMethods(ctx context.Context, codes []string) ([]domain.GlobalPaymentMethod, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	q := fmt.Sprintf(getGlobalPaymentMethodsSQL, placeholders(len(codes)))
	rows, err := r.db.QueryContext(ctx, q, stringArgs(codes)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GlobalPaymentMethod
	idx := make(map[int64]int)
	var ids []int64
	for rows.Next() {
		var m domain.GlobalPaymentMethod
		if err := rows.Scan(&m.ID, &m.Code, &m.Name); err != nil {
			return nil, err
		}
		idx[m.ID] = len(out)
		ids = append(ids, m.ID)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	pq := fmt.Sprintf(getGlobalPaymentProvidersSQL, placeholders(len(ids)))
	prows, err := r.db.QueryContext(ctx, pq, int64Args(ids)...)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var (
			methodID int64
			p        domain.GlobalPaymentProvider
		)
		if err := prows.Scan(&methodID, &p.ID, &p.Code, &p.Name); err != nil {
			return nil, err
		}
		if i, ok := idx[methodID]; ok {
			out[i].Providers = append(out[i].Providers, p)
		}
	}
	return out, prows.Err()
}

func (r *Repo) GetHotelPaymentMethodSettings(ctx context.Context, hotelID int64, methodIDs []int64) ([]domain.HotelPaymentMethodSetting, error) {
	if len(methodIDs) == 0 {
		return nil, nil
	}
	q := fmt.Sprintf(getHotelPaymentMethodSettingsSQL, placeholders(len(methodIDs)))
	args := append([]any{hotelID}, int64Args(methodIDs)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelPaymentMethodSetting
	for rows.Next() {
		var (
			s        domain.HotelPaymentMethodSetting
			metaJSON []byte
		)
		if err := rows.Scan(&s.HotelID, &s.GlobalMethodID, &s.ProviderCode, &s.Status, &metaJSON); err != nil {
			return nil, err
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &s.Metadata); err != nil {
				return nil, fmt.Errorf("payment method setting %d/%s metadata: %w", s.GlobalMethodID, s.ProviderCode, err)
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
