package logging

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCacheKey   = "cache_key"
	FieldCalcID     = "calculation_id"
	FieldTermYears  = "term_years"
	FieldPayments   = "number_of_payments"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentMortgage   = "mortgage"
	ComponentComparison = "term_comparison"
	ComponentStorage    = "storage"
	ComponentCache      = "cache"
	ComponentRateLimit  = "rate_limit"
)

// Operations defines standard operation names
const (
	OpCalculate = "calculate"
	OpCompare   = "compare_terms"
	OpHistory   = "history"
	OpCacheGet  = "cache_get"
	OpCacheSet  = "cache_set"
	OpSave      = "save"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
