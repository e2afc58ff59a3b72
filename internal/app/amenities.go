package app

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"hotel_policy/internal/domain"
)

// AmenityService reconciles the id/code split output of the extras resolver
// against the amenity catalog into one presentable list.
type AmenityService struct {
	repo    domain.PolicyRepository
	extras  *ExtrasResolver
	catalog domain.AmenityCatalog
}

func NewAmenityService(repo domain.PolicyRepository, extras *ExtrasResolver, catalog domain.AmenityCatalog) *AmenityService {
	return &AmenityService{repo: repo, extras: extras, catalog: catalog}
}

func (s *AmenityService) ListAmenities(ctx context.Context, hotelID int64, ratePlanCode, fromDate, toDate string) (domain.ExtrasView, error) {
	dates, err := domain.ExpandDates(fromDate, toDate)
	if err != nil {
		return domain.ExtrasView{}, err
	}

	plans, err := s.repo.GetRatePlansByCodes(ctx, hotelID, []string{ratePlanCode})
	if err != nil {
		return domain.ExtrasView{}, err
	}
	if len(plans) == 0 {
		return domain.ExtrasView{}, fmt.Errorf("%w: rate plan %s", domain.ErrNotFound, ratePlanCode)
	}
	plan := plans[0]

	res, err := s.extras.Resolve(ctx, plan, dates)
	if err != nil {
		return domain.ExtrasView{}, err
	}

	// Both catalog lookups are independent reads; issue them concurrently.
	var byID, byCode []domain.AmenityEntry
	g, gctx := errgroup.WithContext(ctx)
	if len(res.IDsFromDefault) > 0 {
		g.Go(func() error {
			var gerr error
			byID, gerr = s.catalog.GetByIDs(gctx, res.IDsFromDefault)
			return gerr
		})
	}
	if len(res.CodesFromDailyOverride) > 0 {
		g.Go(func() error {
			var gerr error
			byCode, gerr = s.catalog.GetByCodes(gctx, res.CodesFromDailyOverride)
			return gerr
		})
	}
	if err := g.Wait(); err != nil {
		return domain.ExtrasView{}, err
	}

	view := domain.ExtrasView{
		HotelID:      hotelID,
		RatePlanCode: ratePlanCode,
		FromDate:     fromDate,
		ToDate:       toDate,
	}
	seen := make(map[string]bool)
	for _, e := range byID {
		if seen[e.Code] {
			continue
		}
		seen[e.Code] = true
		view.Amenities = append(view.Amenities, domain.AmenityView{
			ID:   e.ID,
			Code: e.Code,
			Name: e.Name,
			Type: res.TypeByID[e.ID],
		})
	}
	for _, e := range byCode {
		if seen[e.Code] {
			continue
		}
		seen[e.Code] = true
		view.Amenities = append(view.Amenities, domain.AmenityView{
			ID:   e.ID,
			Code: e.Code,
			Name: e.Name,
			Type: res.TypeByCode[e.Code],
		})
	}
	sort.Slice(view.Amenities, func(i, j int) bool { return view.Amenities[i].Code < view.Amenities[j].Code })
	return view, nil
}
