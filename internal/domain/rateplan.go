package domain

// RatePlan is the sellable pricing/policy bundle policies resolve against.
// Immutable for the duration of a resolution call.
type RatePlan struct {
	HotelID       int64
	ID            int64
	Code          string
	CxlPolicyCode string // rate-plan-level default, always present
}

// DerivedSetting links a derived rate plan to its master, with independent
// follow-flags per capability. At most one active row per (hotel, rate plan).
//
// FollowDailyPaymentTerm has no column of its own yet; the storage layer
// copies FollowDailyCxlPolicy into it (compatibility shim, see DESIGN.md).
type DerivedSetting struct {
	HotelID                    int64
	RatePlanID                 int64
	MasterRatePlanID           int64
	FollowDailyCxlPolicy       bool
	FollowDailyPaymentTerm     bool
	FollowDailyIncludedAmenity bool
}

// Follows reports whether the named capability flag opts into master
// indirection on this row.
func (d DerivedSetting) Follows(flag FollowFlag) bool {
	switch flag {
	case FollowCxlPolicy:
		return d.FollowDailyCxlPolicy
	case FollowPaymentTerm:
		return d.FollowDailyPaymentTerm
	case FollowIncludedAmenity:
		return d.FollowDailyIncludedAmenity
	}
	return false
}

// PaymentTermSetting maps a rate plan to a hotel payment term and the
// payment-method codes supported under it. A rate plan may carry several
// rows; at most one has IsDefault=true.
type PaymentTermSetting struct {
	HotelID            int64
	RatePlanID         int64
	HotelPaymentTermID int64
	IsDefault          bool
	MethodCodes        []string
}

// DailyOverride is one per-(ratePlan,date) exception row. The row's mere
// existence constitutes an override; Adjusted is always true for stored rows.
type DailyOverride struct {
	HotelID    int64
	RatePlanID int64
	Date       string // YYYY-MM-DD
	Code       string
}

// DailyPolicy is one night of resolved policy for one rate plan.
// RatePlanID is always the caller's id, even when the value was inherited
// from a master rate plan.
type DailyPolicy struct {
	Date       string
	RatePlanID int64
	Code       string
	Adjusted   bool
}
