package providers

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/rscloud/internal/cache"
	"nathanbeddoewebdev/rscloud/internal/config"
	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/logger"
	"nathanbeddoewebdev/rscloud/internal/pricing"
	"nathanbeddoewebdev/rscloud/internal/providers/rackspace"
	"nathanbeddoewebdev/rscloud/internal/services/auth"
	"nathanbeddoewebdev/rscloud/internal/transport"
)

// RegisterRackspace registers every v1.0 variant with the global registry.
func RegisterRackspace() {
	for _, name := range rackspace.Variants() {
		Register(name, rackspaceFactory(name))
	}
}

func rackspaceFactory(name string) Factory {
	return func(store auth.Store, cfg *config.Config) (domain.ComputeProvider, error) {
		v, err := ResolveVariant(name, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Username == "" {
			return nil, errors.New("no username configured; run 'rscloud config set username <name>'")
		}

		key, err := store.GetAPIKey(v.Name)
		if err != nil {
			return nil, fmt.Errorf("%s auth: %w", v.Name, err)
		}

		prices, err := loadPrices(cfg, v)
		if err != nil {
			return nil, err
		}

		doer := transport.NewHTTP()
		authn := rackspace.NewKeyAuthenticator(v.AuthURL, cfg.Username, key, doer, cache.NewDefault())
		return rackspace.New(v, authn, rackspace.WithTransport(doer), rackspace.WithPrices(prices)), nil
	}
}

// ResolveVariant looks up a variant. The configured auth URL only applies
// to variants without a fixed endpoint, so credentials of a fixed-endpoint
// variant are never sent elsewhere. It fails when the variant ends up
// without an auth endpoint.
func ResolveVariant(name string, cfg *config.Config) (rackspace.Variant, error) {
	v, ok := rackspace.LookupVariant(name)
	if !ok {
		return rackspace.Variant{}, fmt.Errorf("providers: unknown variant %q", name)
	}
	if v.AuthURL == "" && cfg != nil {
		v = v.WithAuthURL(cfg.AuthURL)
	}
	if v.AuthURL == "" {
		return rackspace.Variant{}, fmt.Errorf("variant %q has no auth endpoint; run 'rscloud config set auth-url <url>'", v.Name)
	}
	return v, nil
}

func loadPrices(cfg *config.Config, v rackspace.Variant) (pricing.Lookup, error) {
	if cfg.PricingFile == "" {
		return pricing.Default(), nil
	}
	table, err := pricing.Load(cfg.PricingFile)
	if err != nil {
		return nil, err
	}
	if !table.HasNamespace(pricing.CategoryCompute, v.PricingNamespace) {
		logger.Get().Warn().
			Str("file", cfg.PricingFile).
			Str("namespace", v.PricingNamespace).
			Msg("pricing file has no compute prices for this variant; sizes will show no price")
	}
	return table, nil
}
