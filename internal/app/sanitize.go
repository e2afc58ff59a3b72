package app

import "strings"

// Per-provider metadata allow-lists. Everything not listed is a credential or
// internal key (API keys, HMAC keys, merchant accounts, URL prefixes) and is
// stripped before a settings object leaves the service. Maintained explicitly
// per provider code, never inferred from field-name patterns.
var providerMetadataAllowList = map[string][]string{
	"STRIPE": {"publishableKey", "statementDescriptor", "publicDisplayName"},
	"ADYEN":  {"publicDisplayName", "environment"},
	"PAYPAL": {"clientId", "publicDisplayName"},
	"MEWS":   {"publicDisplayName"},
	"BANK_TRANSFER": {
		"publicDisplayName", "beneficiaryName", "bankName",
	},
	"OTHER": {"publicDisplayName", "instructions"},
}

// sanitizeMetadata returns a copy of metadata restricted to the provider's
// allow-list. Unknown providers keep nothing.
func sanitizeMetadata(providerCode string, metadata map[string]string) map[string]string {
	allowed, ok := providerMetadataAllowList[strings.ToUpper(providerCode)]
	if !ok || len(metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(allowed))
	for _, k := range allowed {
		if v, ok := metadata[k]; ok && v != "" {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
