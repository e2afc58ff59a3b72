package domain

import "context"

// PolicyRepository is the read-only relational view the engine resolves
// against. All methods are idempotent reads; callers may retry freely.
type PolicyRepository interface {
	// Rate plans and derived-setting index
	GetRatePlansByCodes(ctx context.Context, hotelID int64, codes []string) ([]RatePlan, error)
	GetRatePlanByID(ctx context.Context, hotelID, ratePlanID int64) (*RatePlan, error)
	GetDerivedSetting(ctx context.Context, hotelID, ratePlanID int64) (*DerivedSetting, error)
	// Batched variant; returns only rows where the named follow-flag is set.
	ListDerivedSettings(ctx context.Context, hotelID int64, ratePlanIDs []int64, flag FollowFlag) ([]DerivedSetting, error)

	// Rate-plan-level defaults
	GetPaymentTermSettings(ctx context.Context, hotelID, ratePlanID int64) ([]PaymentTermSetting, error)
	GetExtraServices(ctx context.Context, hotelID, ratePlanID int64) ([]ExtraService, error)

	// Daily override tables, filtered to the requested dates
	GetDailyPaymentTerms(ctx context.Context, hotelID, ratePlanID int64, dates []string) ([]DailyOverride, error)
	GetDailyCxlPolicies(ctx context.Context, hotelID, ratePlanID int64, dates []string) ([]DailyOverride, error)
	GetDailyExtraServices(ctx context.Context, hotelID, ratePlanID int64, dates []string) ([]DailyExtraService, error)

	// Hotel-level catalogs
	GetHotelPaymentTerms(ctx context.Context, hotelID int64) ([]HotelPaymentTerm, error)
	GetHotelCxlPolicies(ctx context.Context, hotelID int64, codes []string) ([]HotelCancellationPolicy, error)

	// Payment-method catalog and per-hotel activation
	GetGlobalPaymentMethods(ctx context.Context, codes []string) ([]GlobalPaymentMethod, error)
	GetHotelPaymentMethodSettings(ctx context.Context, hotelID int64, methodIDs []int64) ([]HotelPaymentMethodSetting, error)
}

// FollowFlag names one capability's override-authority flag on the
// derived-setting row.
type FollowFlag int

const (
	FollowCxlPolicy FollowFlag = iota
	FollowPaymentTerm
	FollowIncludedAmenity
)

// AmenityCatalog is the external amenity/feature catalog service.
type AmenityCatalog interface {
	GetByIDs(ctx context.Context, ids []int64) ([]AmenityEntry, error)
	GetByCodes(ctx context.Context, codes []string) ([]AmenityEntry, error)
}

// Cache is a read-through JSON cache for assembled responses.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
