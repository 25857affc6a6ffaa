package checkout

import (
	"fmt"

	"event-ticketing-frontend/internal/models"
)

// InstructionKind tells the browser how to continue a payment
type InstructionKind string

const (
	// InstructionHostedFields embeds the provider's hosted card fields
	// using a client secret and publishable key
	InstructionHostedFields InstructionKind = "HOSTED_FIELDS"
	// InstructionRedirect sends the browser to the provider's checkout page
	InstructionRedirect InstructionKind = "REDIRECT"
)

// Instructions are the provider-specific steps the browser needs to
// collect a confirmation for a created payment intent.
type Instructions struct {
	Provider     models.PaymentProvider `json:"provider"`
	Kind         InstructionKind        `json:"kind"`
	ClientSecret string                 `json:"client_secret,omitempty"`
	PublicKey    string                 `json:"public_key,omitempty"`
	CheckoutURL  string                 `json:"checkout_url,omitempty"`
}

// ProviderFlow turns a backend payment response into confirmation
// instructions. One implementation per provider, selected through the
// lookup table below; nothing else branches on provider identity.
type ProviderFlow interface {
	Instructions(p *models.Payment) (Instructions, error)
}

type stripeFlow struct{}

func (stripeFlow) Instructions(p *models.Payment) (Instructions, error) {
	if p.ClientSecret == "" {
		return Instructions{}, fmt.Errorf("stripe payment %s has no client secret", p.ID)
	}
	return Instructions{
		Provider:     models.ProviderStripe,
		Kind:         InstructionHostedFields,
		ClientSecret: p.ClientSecret,
		PublicKey:    p.PublicKey,
	}, nil
}

type mercadoPagoFlow struct{}

func (mercadoPagoFlow) Instructions(p *models.Payment) (Instructions, error) {
	if p.CheckoutURL == "" {
		return Instructions{}, fmt.Errorf("mercadopago payment %s has no checkout URL", p.ID)
	}
	return Instructions{
		Provider:    models.ProviderMercadoPago,
		Kind:        InstructionRedirect,
		CheckoutURL: p.CheckoutURL,
		PublicKey:   p.PublicKey,
	}, nil
}

var providerFlows = map[models.PaymentProvider]ProviderFlow{
	models.ProviderStripe:      stripeFlow{},
	models.ProviderMercadoPago: mercadoPagoFlow{},
}

// FlowFor returns the flow for a provider, or ErrUnknownProvider
func FlowFor(provider models.PaymentProvider) (ProviderFlow, error) {
	flow, ok := providerFlows[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownProvider, provider)
	}
	return flow, nil
}
