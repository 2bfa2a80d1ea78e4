package sentiment

// AnalysisRequest is the body of a POST /analyze call.
type AnalysisRequest struct {
	Text string `json:"text"`
}

// AnalysisResult is the body of a successful POST /analyze response.
type AnalysisResult struct {
	// Text is the analyzed string as echoed by the backend
	Text string `json:"text"`

	// Sentiment is the wire tag, normally one of the Tag* constants
	Sentiment string `json:"sentiment"`

	// Confidence is expected in [0,1]
	Confidence float64 `json:"confidence"`
}

// Label parses the result's sentiment tag.
func (r *AnalysisResult) Label() Label {
	if r == nil {
		return Unknown
	}
	return ParseLabel(r.Sentiment)
}

// ErrorResponse is the body the backend sends with non-2xx responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
