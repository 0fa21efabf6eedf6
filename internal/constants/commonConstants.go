package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceAPI       RequestSource = "API"
	RequestSourceWebClient RequestSource = "WEB_CLIENT"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixComponentList CachePrefix = "COMPONENTS_"
	CachePrefixAircraftHours CachePrefix = "ACFT_HRS_"
	CachePrefixSchoolConfig  CachePrefix = "SCHOOL_CFG_"
	CachePrefixStatement     CachePrefix = "STATEMENT_"
)

// VisitEventStream is the Redis stream carrying visit.logged events from the
// API to the cache-invalidation worker.
const VisitEventStream = "visit_events"
