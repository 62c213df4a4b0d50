package dto

type SummarizeRequest struct {
	Text string `json:"text" validate:"required"`
	// Options mirror the browser Summarizer API knobs.
	Type   string `json:"type"`
	Length string `json:"length"`
	Format string `json:"format"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}
