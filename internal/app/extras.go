package app

import (
	"context"
	"sort"

	"hotel_policy/internal/domain"
)

// ExtrasResolver resolves the amenity set attached to a rate plan over a stay
// range. Included/mandatory rows are read from the source rate plan (self, or
// the master when the amenity follow-flag redirects); extra-type rows always
// come from the rate plan itself. A daily code-list row replaces the default
// id set entirely for its date.
type ExtrasResolver struct {
	repo domain.PolicyRepository
}

func NewExtrasResolver(repo domain.PolicyRepository) *ExtrasResolver {
	return &ExtrasResolver{repo: repo}
}

func (r *ExtrasResolver) Resolve(ctx context.Context, plan domain.RatePlan, dates []string) (domain.ExtrasResolution, error) {
	sourceID := plan.ID
	ds, err := r.repo.GetDerivedSetting(ctx, plan.HotelID, plan.ID)
	if err != nil {
		return domain.ExtrasResolution{}, err
	}
	if ds != nil && ds.Follows(domain.FollowIncludedAmenity) && ds.MasterRatePlanID > 0 {
		sourceID = ds.MasterRatePlanID
	}

	// Included/mandatory defaults from the source; extras from self.
	srcRows, err := r.repo.GetExtraServices(ctx, plan.HotelID, sourceID)
	if err != nil {
		return domain.ExtrasResolution{}, err
	}
	ownRows := srcRows
	if sourceID != plan.ID {
		if ownRows, err = r.repo.GetExtraServices(ctx, plan.HotelID, plan.ID); err != nil {
			return domain.ExtrasResolution{}, err
		}
	}

	var included, mandatory, extra []int64
	for _, e := range srcRows {
		switch e.Type {
		case domain.ExtraTypeIncluded:
			included = append(included, e.ExtrasID)
		case domain.ExtraTypeMandatory:
			mandatory = append(mandatory, e.ExtrasID)
		}
	}
	for _, e := range ownRows {
		if e.Type == domain.ExtraTypeExtra {
			extra = append(extra, e.ExtrasID)
		}
	}

	// Two independent daily-override lookups: source-keyed rows gate the
	// included/mandatory set, own-keyed rows gate the extra set. With no
	// indirection both read the same rows.
	bySource, err := r.dailyByDate(ctx, plan.HotelID, sourceID, dates)
	if err != nil {
		return domain.ExtrasResolution{}, err
	}
	byOwn := bySource
	if sourceID != plan.ID {
		if byOwn, err = r.dailyByDate(ctx, plan.HotelID, plan.ID, dates); err != nil {
			return domain.ExtrasResolution{}, err
		}
	}

	res := domain.ExtrasResolution{
		TypeByID:   make(map[int64]string),
		TypeByCode: make(map[string]string),
	}
	idSet := make(map[int64]bool)
	codeSet := make(map[string]bool)
	addIDs := func(ids []int64, typ string) {
		for _, id := range ids {
			if !idSet[id] {
				idSet[id] = true
				res.IDsFromDefault = append(res.IDsFromDefault, id)
			}
			if _, ok := res.TypeByID[id]; !ok {
				res.TypeByID[id] = typ
			}
		}
	}
	addCodes := func(codes []string, typ string) {
		for _, code := range codes {
			if !codeSet[code] {
				codeSet[code] = true
				res.CodesFromDailyOverride = append(res.CodesFromDailyOverride, code)
			}
			if _, ok := res.TypeByCode[code]; !ok {
				res.TypeByCode[code] = typ
			}
		}
	}

	for _, d := range dates {
		if codes, ok := bySource[d]; ok {
			addCodes(codes, domain.ExtraTypeIncluded)
		} else {
			addIDs(included, domain.ExtraTypeIncluded)
			addIDs(mandatory, domain.ExtraTypeMandatory)
		}
		if codes, ok := byOwn[d]; ok {
			if sourceID != plan.ID {
				addCodes(codes, domain.ExtraTypeExtra)
			}
			// Same row already consumed above when source == self.
		} else {
			addIDs(extra, domain.ExtraTypeExtra)
		}
	}

	sort.Slice(res.IDsFromDefault, func(i, j int) bool { return res.IDsFromDefault[i] < res.IDsFromDefault[j] })
	sort.Strings(res.CodesFromDailyOverride)
	return res, nil
}

func (r *ExtrasResolver) dailyByDate(ctx context.Context, hotelID, ratePlanID int64, dates []string) (map[string][]string, error) {
	rows, err := r.repo.GetDailyExtraServices(ctx, hotelID, ratePlanID, dates)
	if err != nil {
		return nil, err
	}
	m := make(map[string][]string, len(rows))
	for _, row := range rows {
		m[row.Date] = row.Codes
	}
	return m, nil
}
