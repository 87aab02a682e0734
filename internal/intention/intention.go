// Package intention supplies the "daily intention" sentence shown in the
// media hub. Providers never fail: any problem resolves to Fallback.
package intention

import "context"

const (
	// Fallback is shown while the intention loads and whenever the text
	// service is unavailable.
	Fallback = "Seeking the light in our daily walk..."

	// EmptyReply replaces a successful but blank response.
	EmptyReply = "Grace is found in the simple moments of community."
)

// Provider produces the day's intention.
type Provider interface {
	FetchDailyIntention(ctx context.Context) string
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) string

func (f ProviderFunc) FetchDailyIntention(ctx context.Context) string {
	return f(ctx)
}

// Static always returns the same sentence.
type Static string

func (s Static) FetchDailyIntention(context.Context) string {
	return string(s)
}
