// Package rackspace implements domain.ComputeProvider for the Rackspace
// Cloud Servers v1.0 API and its UK and OpenStack variants.
package rackspace

import (
	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/pricing"
	"nathanbeddoewebdev/rscloud/internal/transport"
	"nathanbeddoewebdev/rscloud/internal/wire"
)

// Provider talks to one variant of the v1.0 API.
type Provider struct {
	variant Variant
	conn    *connection
	mapper  Mapper
}

var _ domain.ComputeProvider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*options)

type options struct {
	doer   transport.Doer
	prices pricing.Lookup
	nonce  func() string
}

// WithTransport replaces the HTTP transport.
func WithTransport(doer transport.Doer) Option {
	return func(o *options) { o.doer = doer }
}

// WithPrices sets the pricing table used for sizes. Defaults to the
// embedded table.
func WithPrices(prices pricing.Lookup) Option {
	return func(o *options) { o.prices = prices }
}

// WithNonce replaces the cache-busting nonce generator.
func WithNonce(nonce func() string) Option {
	return func(o *options) { o.nonce = nonce }
}

// New returns a Provider for variant v authenticating through auth.
func New(v Variant, auth Authenticator, opts ...Option) *Provider {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.doer == nil {
		o.doer = transport.NewHTTP()
	}
	if o.prices == nil {
		o.prices = pricing.Default()
	}
	if o.nonce == nil {
		o.nonce = newNonce
	}

	return &Provider{
		variant: v,
		conn: &connection{
			doer: o.doer,
			auth: auth,
			decoder: wire.Decoder{
				Driver:                v.Name,
				RequireXMLContentType: v.RequireXMLContentType,
			},
			nonce: o.nonce,
		},
		mapper: Mapper{
			Namespace:        v.Namespace,
			Driver:           v.Name,
			PricingNamespace: v.PricingNamespace,
			Prices:           o.prices,
		},
	}
}

func (p *Provider) GetDisplayName() string {
	return p.variant.DisplayName
}

// Variant returns the variant the provider was built for.
func (p *Provider) Variant() Variant {
	return p.variant
}

// ListLocations returns the variant's fixed location. No request is made.
func (p *Provider) ListLocations() []domain.Location {
	return []domain.Location{p.variant.location()}
}

func (p *Provider) request(name string) *wire.Element {
	return wire.NewRequest(p.variant.Namespace, name)
}
