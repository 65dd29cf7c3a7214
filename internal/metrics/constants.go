package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Gacha metric names
const (
	MetricNamePullsTotal             = "gacha_pulls_total"
	MetricNameDrawsTotal             = "gacha_draws_total"
	MetricNamePullRejections         = "gacha_pull_rejections_total"
	MetricNameCurrencySpent          = "gacha_currency_spent_total"
	MetricNameRewardInconsistencies  = "gacha_reward_inconsistencies_total"
	MetricNameRegistryReloads        = "gacha_registry_reloads_total"
	MetricNamePullDuration           = "gacha_pull_duration_seconds"
	MetricNamePityPersistenceFailure = "gacha_pity_persistence_failures_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

const (
	HelpTextPullsTotal             = "Accepted pull requests by banner and draw count"
	HelpTextDrawsTotal             = "Individual draws by banner and rarity tier"
	HelpTextPullRejections         = "Rejected pull requests by reason"
	HelpTextCurrencySpent          = "Currency units deducted for pulls by cost item"
	HelpTextRewardInconsistencies  = "Rewards lost after currency was already deducted"
	HelpTextRegistryReloads        = "Banner registry load attempts by result"
	HelpTextPullDuration           = "Time spent inside the per-player pull critical section"
	HelpTextPityPersistenceFailure = "Pity states that could not be loaded or saved"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelBanner = "banner"
	LabelCount  = "count"
	LabelTier   = "tier"
	LabelReason = "reason"
	LabelItem   = "item"
	LabelResult = "result"
	LabelOp     = "op"
)

// Label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	OpLoad = "load"
	OpSave = "save"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// PullLatencyBuckets are tighter: a pull is arithmetic plus in-memory grants.
var PullLatencyBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05}
