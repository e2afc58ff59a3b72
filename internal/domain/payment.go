package domain

import "github.com/shopspring/decimal"

// HotelPaymentTerm describes when the guest pays. PayOnConfirmation is the
// fraction of the total prepaid at confirmation (zero when nothing is due
// up front); PayAtHotel is the remainder settled on site.
type HotelPaymentTerm struct {
	HotelID           int64
	ID                int64
	Code              string
	PayOnConfirmation decimal.Decimal
	PayAtHotel        decimal.Decimal
}

// Hotel payment-method setting status values.
const (
	MethodStatusActive   = "ACTIVE"
	MethodStatusPending  = "PENDING"
	MethodStatusInactive = "INACTIVE"
)

// GlobalPaymentProvider is one provider implementing a global method
// (e.g. stripe, adyen, paypal, mews).
type GlobalPaymentProvider struct {
	ID   int64
	Code string
	Name string
}

// GlobalPaymentMethod is a catalog entry (credit card, bank transfer, ...).
type GlobalPaymentMethod struct {
	ID        int64
	Code      string
	Name      string
	Providers []GlobalPaymentProvider
}

// HotelPaymentMethodSetting is a hotel's activation of a global method via a
// specific provider. Metadata is provider-specific and may carry credentials;
// it must never leave the service unsanitized.
type HotelPaymentMethodSetting struct {
	HotelID        int64
	GlobalMethodID int64
	ProviderCode   string
	Status         string
	Metadata       map[string]string
}

// EligibleProvider is the externally visible, sanitized provider entry.
type EligibleProvider struct {
	ProviderCode string            `json:"providerCode"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// EligibleMethod is one payment method a guest may use for the stay.
type EligibleMethod struct {
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Providers []EligibleProvider `json:"providers"`
}

// PaymentMethodsView is the response of the eligibility assembly.
type PaymentMethodsView struct {
	HotelID       int64            `json:"hotelId"`
	RatePlanCodes []string         `json:"ratePlanCodes"`
	FromDate      string           `json:"fromDate"`
	ToDate        string           `json:"toDate"`
	Methods       []EligibleMethod `json:"methods"`
}
