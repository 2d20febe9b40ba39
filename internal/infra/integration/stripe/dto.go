package stripe

// --- DTOs limpos: o que o usecase manda pro Client ---

type CheckoutSessionInput struct {
	CampaignID  string
	AmountCents int64  // preço fixo do unlock, em centavos
	Currency    string // "usd"
	ProductName string
	Description string
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession: o que interessa da resposta do Stripe.
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"` // paid | unpaid | no_payment_required
	Status        string `json:"status"`
	Metadata      struct {
		CampaignID string `json:"campaignId"`
	} `json:"metadata"`
}

// WebhookEvent: envelope do evento assinado que o Stripe entrega.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object CheckoutSession `json:"object"`
	} `json:"data"`
}

// EventCheckoutCompleted é o único tipo de evento que flipa a flag.
const EventCheckoutCompleted = "checkout.session.completed"

// --- RESPONSE de erro da API ---
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
