package model

// SearchSummary represents a narrative description of a match set plus
// suggested follow-up queries. Purely derived, never persisted.
type SearchSummary struct {
	Summary     string   `json:"summary"`
	SearchIdeas []string `json:"search_ideas"`
}

// SummaryRequest asks for a summary of the matches a parameter set produces.
// Total and Results are optional context from the caller's last search; when
// absent the server recomputes both from the filters.
type SummaryRequest struct {
	Q string `json:"q,omitempty"`
	QueryParameters
	Total   int        `json:"total,omitempty"`
	Results []Property `json:"results,omitempty"`
}

// SummaryResponse represents the summary endpoint output.
type SummaryResponse struct {
	SearchSummary
	Total  int             `json:"total"`
	Source InterpretSource `json:"source"`
}

// Chat payload type tags, mirroring the payload struct they describe.
const (
	ChatPayloadQueryParameters = "QueryParameters"
	ChatPayloadSearchSummary   = "SearchSummaryOutput"
)

// ChatRequest represents one user chat turn.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatQueryPayload is the chat payload for a message that was interpreted
// into search parameters. Q carries the original message so the client can
// replay it through the search endpoint verbatim.
type ChatQueryPayload struct {
	Q string `json:"q"`
	QueryParameters
}

// ChatResponse represents the assistant's reply: display text plus a typed
// payload the client can act on.
type ChatResponse struct {
	ResponseText string      `json:"response_text"`
	Payload      interface{} `json:"payload,omitempty"`
	Type         string      `json:"type"`
}

// Feedback actions accepted by the feedback endpoint.
const (
	FeedbackActionClick       = "click"
	FeedbackActionViewDetails = "view_details"
	FeedbackActionContact     = "contact"
)

// FeedbackRequest represents a user interaction with a search result.
type FeedbackRequest struct {
	SearchID   string `json:"search_id" binding:"required"`
	PropertyID string `json:"property_id" binding:"required"`
	Action     string `json:"action" binding:"required"`
}
