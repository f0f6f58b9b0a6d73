package service

import (
	"net/url"

	"braintree-gateway/internal/config"
	"braintree-gateway/internal/dto"
	"braintree-gateway/internal/lang"
	"braintree-gateway/internal/model"
)

const (
	GatewayName     = "braintree"
	GatewayVersion  = "0.0.1"
	gatewayProvider = "Braintree"
	gatewayDesc     = "Braintree Payment Gateway"
)

type Capability string

const (
	CapabilityCheckout Capability = "checkout"
	CapabilityTerms    Capability = "terms"
)

// Gateway describes the Braintree gateway to the storefront: identity,
// supported capabilities, settings and the URLs the checkout flow uses.
type Gateway struct {
	cfg      config.Braintree
	baseURL  string
	services map[Capability]bool
	strings  lang.Strings
}

func NewGateway(cfg config.Braintree, baseURL string, strs lang.Strings) *Gateway {
	return &Gateway{
		cfg:     cfg,
		baseURL: baseURL,
		// checkout only, no recurring terms
		services: map[Capability]bool{
			CapabilityCheckout: true,
			CapabilityTerms:    false,
		},
		strings: strs,
	}
}

func (g *Gateway) Name() string        { return GatewayName }
func (g *Gateway) Provider() string    { return gatewayProvider }
func (g *Gateway) Description() string { return gatewayDesc }
func (g *Gateway) Version() string     { return GatewayVersion }

func (g *Gateway) Supports(c Capability) bool {
	return g.services[c]
}

func (g *Gateway) HasValidConfig() bool {
	return g.cfg.HasValidConfig()
}

// MerchantAccountID is empty when the processor default account is used.
func (g *Gateway) MerchantAccountID() string {
	return g.cfg.Active().MerchantAccountID
}

func (g *Gateway) ActionURL() string {
	return g.baseURL + "/confirm"
}

func (g *Gateway) Method() string {
	return "post"
}

// MainURL is where buyers could log in to review a purchase. Braintree has
// no buyer-facing site.
func (g *Gateway) MainURL() string {
	return ""
}

func (g *Gateway) CheckoutJS(_ *model.Cart) string {
	return ""
}

func (g *Gateway) ThanksURL() string {
	return g.baseURL + "/?thanks=" + url.QueryEscape(GatewayName)
}

func (g *Gateway) HomeURL() string {
	return g.baseURL + "/"
}

func (g *Gateway) ThanksVars() map[string]string {
	return map[string]string{
		"gateway_url":  g.MainURL(),
		"gateway_name": g.Description(),
	}
}

// IPNLogVars returns the IPN values worth displaying. Braintree has none.
func (g *Gateway) IPNLogVars(_ []byte) map[string]string {
	return map[string]string{}
}

func (g *Gateway) Describe() *dto.GatewayConfigResponse {
	caps := make(map[string]bool, len(g.services))
	for c, on := range g.services {
		caps[string(c)] = on
	}

	fields := config.Fields()
	out := make([]dto.ConfigField, 0, len(fields))
	for _, f := range fields {
		out = append(out, dto.ConfigField{
			Scope: string(f.Scope),
			Name:  f.Name,
			Type:  string(f.Type),
			Value: g.cfg.Value(f, false),
			Help:  g.strings.Help(f.Name),
		})
	}

	return &dto.GatewayConfigResponse{
		Name:         g.Name(),
		Provider:     g.Provider(),
		Description:  g.Description(),
		Version:      g.Version(),
		Environment:  g.cfg.EnvironmentName(),
		Valid:        g.HasValidConfig(),
		Capabilities: caps,
		Fields:       out,
	}
}
