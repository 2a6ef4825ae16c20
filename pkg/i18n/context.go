package i18n

import "context"

type providerContextKey struct{}

// WithProvider returns a copy of ctx carrying p.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerContextKey{}, p)
}

// FromContext returns the provider stored in ctx, if any.
func FromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerContextKey{}).(*Provider)
	return p, ok && p != nil
}

// T translates key with the provider from ctx. Without a provider the
// default (if any) or the key is returned.
func T(ctx context.Context, key string, opts ...Option) string {
	if p, ok := FromContext(ctx); ok {
		return p.T(key, opts...)
	}
	return Translate(nil, key, opts...)
}
