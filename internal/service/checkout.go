package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"braintree-gateway/internal/model"

	"github.com/google/uuid"
)

//go:embed templates/*.html
var templateFS embed.FS

var checkoutTmpl = template.Must(template.ParseFS(templateFS, "templates/checkout.html"))

type checkoutVars struct {
	ActionURL   string
	Method      string
	Disabled    bool
	UniqID      string
	Amount      string
	ClientToken string
	OrderID     string
	ButtonText  string
}

// CheckoutButton renders the drop-in checkout form for the cart. The
// Braintree scripts are registered on the first render only.
func (s *braintreeServiceImpl) CheckoutButton(ctx context.Context, cart *model.Cart) (template.HTML, error) {
	if !s.gateway.Supports(CapabilityCheckout) {
		return "", nil
	}

	clientToken, err := s.braintreeClient.GenerateClientToken(ctx)
	if err != nil {
		return "", fmt.Errorf("braintree client token: %w", err)
	}

	s.scriptsOnce.Do(func() {
		s.scripts.AddLinkScript(braintreeClientScript)
		s.scripts.AddLinkScript(braintreeDropinScript)
	})

	var buf bytes.Buffer
	err = checkoutTmpl.Execute(&buf, checkoutVars{
		ActionURL:   s.gateway.ActionURL(),
		Method:      s.gateway.Method(),
		Disabled:    cart.Invalid,
		UniqID:      uuid.NewString(),
		Amount:      cart.BalanceDue.StringFixed(2),
		ClientToken: clientToken,
		OrderID:     cart.OrderID,
		ButtonText:  s.strings.Get("confirm_order"),
	})
	if err != nil {
		return "", fmt.Errorf("render checkout button: %w", err)
	}

	return template.HTML(buf.String()), nil
}
