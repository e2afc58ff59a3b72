package domain

// HotelCancellationPolicy describes when cancellation fees start applying.
// HourPrior is hours before arrival; anything <= 0 means cancellation stays
// free up to arrival, the most flexible policy a hotel can offer.
type HotelCancellationPolicy struct {
	HotelID      int64
	Code         string
	HourPrior    int
	Name         string
	Description  string
	Translations []CxlPolicyTranslation
}

// CxlPolicyTranslation carries localized name/description for one policy.
type CxlPolicyTranslation struct {
	Lang        string
	Name        string
	Description string
}

// Translate overlays the translation for lang onto the policy, if one exists.
// Non-matching languages leave the base fields untouched.
func (p HotelCancellationPolicy) Translate(lang string) HotelCancellationPolicy {
	for _, t := range p.Translations {
		if t.Lang != lang {
			continue
		}
		if t.Name != "" {
			p.Name = t.Name
		}
		if t.Description != "" {
			p.Description = t.Description
		}
		break
	}
	return p
}

// CancellationPolicyView is the externally visible winner for a stay.
type CancellationPolicyView struct {
	HotelID     int64         `json:"hotelId"`
	Code        string        `json:"code"`
	HourPrior   int           `json:"hourPrior"`
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Language    string        `json:"language"`
	Daily       []DailyPolicy `json:"daily,omitempty"`
}
