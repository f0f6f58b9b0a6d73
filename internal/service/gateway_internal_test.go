package service

import (
	"context"
	"testing"

	"braintree-gateway/internal/config"
	"braintree-gateway/internal/lang"
	"braintree-gateway/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		in, first, last string
	}{
		{"", "", ""},
		{"   ", "", ""},
		{"Cher", "Cher", ""},
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"Ada King Lovelace", "Ada", "Lovelace"},
		{"Lovelace, Ada", "Ada", "Lovelace"},
		{"Lovelace,", "", "Lovelace"},
	}

	for _, tt := range tests {
		first, last := splitName(tt.in)
		assert.Equal(t, tt.first, first, tt.in)
		assert.Equal(t, tt.last, last, tt.in)
	}
}

func TestGatewayDescriptor(t *testing.T) {
	strs, err := lang.English()
	require.NoError(t, err)

	g := NewGateway(config.Braintree{TestMode: true}, "https://shop.example.com", strs)

	assert.Equal(t, "braintree", g.Name())
	assert.Equal(t, "Braintree", g.Provider())
	assert.Equal(t, "Braintree Payment Gateway", g.Description())
	assert.True(t, g.Supports(CapabilityCheckout))
	assert.False(t, g.Supports(CapabilityTerms))
	assert.False(t, g.HasValidConfig())
	assert.Equal(t, "https://shop.example.com/confirm", g.ActionURL())
	assert.Equal(t, "post", g.Method())
	assert.Empty(t, g.MainURL())
	assert.Empty(t, g.CheckoutJS(&model.Cart{}))
	assert.Empty(t, g.IPNLogVars([]byte(`{}`)))
	assert.Equal(t, map[string]string{
		"gateway_url":  "",
		"gateway_name": "Braintree Payment Gateway",
	}, g.ThanksVars())

	desc := g.Describe()
	assert.Equal(t, "sandbox", desc.Environment)
	assert.False(t, desc.Valid)
	assert.Equal(t, map[string]bool{"checkout": true, "terms": false}, desc.Capabilities)
	require.Len(t, desc.Fields, 9)
	assert.Equal(t, "The merchant ID set up at Braintree", desc.Fields[0].Help)
}

func TestCheckoutButtonUnsupported(t *testing.T) {
	g := NewGateway(config.Braintree{TestMode: true}, "", lang.Strings{})
	g.services[CapabilityCheckout] = false

	svc := &braintreeServiceImpl{gateway: g, scripts: NewScriptRegistry(), log: zerolog.Nop()}

	// no client configured: a remote call would panic
	html, err := svc.CheckoutButton(context.Background(), &model.Cart{OrderID: "ord-1"})
	require.NoError(t, err)
	assert.Empty(t, html)
	assert.Empty(t, svc.Scripts())
}
