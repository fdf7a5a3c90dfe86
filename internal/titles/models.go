package titles

// Method identifies which generation strategy produced a candidate.
type Method string

const (
	MethodAI            Method = "ai"
	MethodRuleBased     Method = "rule_based"
	MethodSmartFallback Method = "smart_fallback"
	MethodBasicFallback Method = "basic_fallback"
)

// Candidate is one suggested title. Immutable once produced; the response
// list keeps generation order and is never re-sorted.
type Candidate struct {
	Title      string  `json:"title"`
	Confidence float64 `json:"confidence"`
	Method     Method  `json:"method"`
}
