package domain

// Extra-service attachment types. Mutually exclusive per row.
const (
	ExtraTypeIncluded  = "INCLUDED"
	ExtraTypeMandatory = "MANDATORY"
	ExtraTypeExtra     = "EXTRA"
)

// ExtraService attaches one amenity to a rate plan with an attachment type.
type ExtraService struct {
	HotelID    int64
	RatePlanID int64
	ExtrasID   int64
	Type       string
}

// DailyExtraService replaces the rate plan's default amenity set for one
// date with an explicit code list. Presence for a date means the id-based
// defaults are ignored entirely for that date.
type DailyExtraService struct {
	HotelID    int64
	RatePlanID int64
	Date       string
	Codes      []string
}

// ExtraServiceDefaults is the rate-plan-level default set partitioned by type.
type ExtraServiceDefaults struct {
	Included  []int64
	Mandatory []int64
	Extra     []int64
}

// ExtrasResolution is the two-shape output of the extra-service resolver:
// ids accumulated from defaults plus codes accumulated from daily override
// rows. Callers reconcile both against the amenity catalog before combining
// with room-product and surcharge scoped extras.
type ExtrasResolution struct {
	IDsFromDefault         []int64
	CodesFromDailyOverride []string
	TypeByID               map[int64]string
	TypeByCode             map[string]string
}

// AmenityEntry is one catalog record from the amenity catalog service.
type AmenityEntry struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// ExtrasView is the catalog-reconciled, presentable amenity list for a
// room-product/rate-plan pair over a stay range.
type ExtrasView struct {
	HotelID      int64         `json:"hotelId"`
	RatePlanCode string        `json:"ratePlanCode"`
	FromDate     string        `json:"fromDate"`
	ToDate       string        `json:"toDate"`
	Amenities    []AmenityView `json:"amenities"`
}

// AmenityView is one amenity with its attachment type.
type AmenityView struct {
	ID   int64  `json:"id,omitempty"`
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}
