package summarizer

import "context"

// Options mirror the knobs of the browser Summarizer API so the server-side
// fallback accepts the same request the extension panel would send.
type Options struct {
	Type   string // "key-points", "tldr", "teaser", "headline"
	Length string // "short", "medium", "long"
	Format string // "plain-text" or "markdown"
}

// Provider is the contract for any summarization backend.
type Provider interface {
	Summarize(ctx context.Context, text string, opts Options) (string, error)
}
