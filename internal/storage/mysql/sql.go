package mysql

const getRatePlansByCodesSQL = `
SELECT hotel_id, id, code, cxl_policy_code
FROM rate_plans
WHERE hotel_id = ? AND code IN (%s)
ORDER BY code
`

const getRatePlanByIDSQL = `
SELECT hotel_id, id, code, cxl_policy_code
FROM rate_plans
WHERE hotel_id = ? AND id = ?
`

// The derived-setting table carries no dedicated payment-term column yet;
// the repo mirrors follow_daily_cxl_policy into the payment-term flag.
const getDerivedSettingSQL = `
SELECT hotel_id, rate_plan_id, master_rate_plan_id,
       follow_daily_cxl_policy, follow_daily_included_amenity
FROM rate_plan_derived_settings
WHERE hotel_id = ? AND rate_plan_id = ?
`

const listDerivedSettingsSQL = `
SELECT hotel_id, rate_plan_id, master_rate_plan_id,
       follow_daily_cxl_policy, follow_daily_included_amenity
FROM rate_plan_derived_settings
WHERE hotel_id = ? AND rate_plan_id IN (%s) AND %s = 1
`

const getPaymentTermSettingsSQL = `
SELECT hotel_id, rate_plan_id, hotel_payment_term_id, is_default, method_codes
FROM rate_plan_payment_term_settings
WHERE hotel_id = ? AND rate_plan_id = ?
ORDER BY hotel_payment_term_id
`

const getExtraServicesSQL = `
SELECT hotel_id, rate_plan_id, extras_id, type
FROM rate_plan_extra_services
WHERE hotel_id = ? AND rate_plan_id = ?
ORDER BY extras_id
`

const getDailyPaymentTermsSQL = `
SELECT hotel_id, rate_plan_id, stay_date, payment_term_code
FROM rate_plan_daily_payment_terms
WHERE hotel_id = ? AND rate_plan_id = ? AND stay_date IN (%s)
ORDER BY stay_date
`

const getDailyCxlPoliciesSQL = `
SELECT hotel_id, rate_plan_id, stay_date, cxl_policy_code
FROM rate_plan_daily_cxl_policies
WHERE hotel_id = ? AND rate_plan_id = ? AND stay_date IN (%s)
ORDER BY stay_date
`

const getDailyExtraServicesSQL = `
SELECT hotel_id, rate_plan_id, stay_date, extra_service_codes
FROM rate_plan_daily_extra_services
WHERE hotel_id = ? AND rate_plan_id = ? AND stay_date IN (%s)
ORDER BY stay_date
`

const getHotelPaymentTermsSQL = `
SELECT hotel_id, id, code, pay_on_confirmation, pay_at_hotel
FROM hotel_payment_terms
WHERE hotel_id = ?
ORDER BY id
`

const getHotelCxlPoliciesSQL = `
SELECT hotel_id, code, hour_prior, name, description
FROM hotel_cxl_policies
WHERE hotel_id = ? AND code IN (%s)
ORDER BY code
`

const getCxlPolicyI18nSQL = `
SELECT policy_code, lang, name, description
FROM hotel_cxl_policy_i18n
WHERE hotel_id = ? AND policy_code IN (%s)
ORDER BY policy_code, lang
`

const getGlobalPaymentMethodsSQL = `
SELECT id, code, name
FROM global_payment_methods
WHERE code IN (%s)
ORDER BY code
`

const getGlobalPaymentProvidersSQL = `
SELECT method_id, id, code, name
FROM global_payment_providers
WHERE method_id IN (%s)
ORDER BY method_id, code
`

const getHotelPaymentMethodSettingsSQL = `
SELECT hotel_id, global_method_id, provider_code, status, metadata
FROM hotel_payment_method_settings
WHERE hotel_id = ? AND global_method_id IN (%s) AND status = 'ACTIVE'
ORDER BY global_method_id, provider_code
`
