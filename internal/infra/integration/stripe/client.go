package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingSignature = errors.New("assinatura ausente")
	ErrInvalidSignature = errors.New("assinatura inválida")
)

// TransportError: o Stripe não respondeu (rede, DNS, timeout). Distinto de
// rejeição da API — o caller pode tentar de novo, então vira 503, não 500.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "stripe inalcançável: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Tolerância do timestamp da assinatura: replay velho demais é rejeitado.
const signatureTolerance = 5 * time.Minute

type Client struct {
	baseURL       string
	apiKey        string
	webhookSecret string
	http          *http.Client

	// injetável nos testes
	now func() time.Time
}

func NewClient(apiKey, webhookSecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.stripe.com/v1"
	}
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		http:          &http.Client{Timeout: 10 * time.Second},
		now:           time.Now,
	}
}

// CreateCheckoutSession: cria a sessão de checkout de preço fixo com o
// campaign id na metadata — é por ali que o webhook acha a campanha depois.
func (c *Client) CreateCheckoutSession(input CheckoutSessionInput) (*CheckoutSession, error) {
	endpoint := fmt.Sprintf("%s/checkout/sessions", c.baseURL)

	// Stripe fala form-encoded, não JSON
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", input.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(input.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", input.ProductName)
	form.Set("line_items[0][price_data][product_data][description]", input.Description)
	form.Set("success_url", input.SuccessURL)
	form.Set("cancel_url", input.CancelURL)
	form.Set("metadata[campaignId]", input.CampaignID)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.decodeError(resp, "criar checkout")
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("erro decode stripe: %w", err)
	}

	return &session, nil
}

// RetrieveSession: consulta direta de status — o caminho de verificação do
// redirect de sucesso, quando o webhook ainda não chegou.
func (c *Client) RetrieveSession(sessionID string) (*CheckoutSession, error) {
	endpoint := fmt.Sprintf("%s/checkout/sessions/%s", c.baseURL, url.PathEscape(sessionID))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.decodeError(resp, "buscar sessão")
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("erro decode stripe: %w", err)
	}

	return &session, nil
}

// VerifySignature valida o header Stripe-Signature ("t=...,v1=...") contra o
// corpo cru: HMAC-SHA256(secret, "<t>.<body>") com comparação em tempo
// constante. Evidência criptográfica ou nada — a flag só muda com isso.
func (c *Client) VerifySignature(body []byte, header string) error {
	if header == "" {
		return ErrMissingSignature
	}
	if c.webhookSecret == "" {
		return errors.New("webhook secret não configurado")
	}

	var timestamp string
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			candidates = append(candidates, kv[1])
		}
	}

	if timestamp == "" || len(candidates) == 0 {
		return ErrInvalidSignature
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	age := c.now().Sub(time.Unix(ts, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// SignPayload gera um header válido — usado pelos testes e pelo tooling local.
func (c *Client) SignPayload(body []byte, at time.Time) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

// ParseEvent decodifica o envelope do webhook (depois da assinatura ok).
func ParseEvent(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("evento stripe inválido: %w", err)
	}
	return &event, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "LeadgenAPI/1.0")
}

func (c *Client) decodeError(resp *http.Response, op string) error {
	body, _ := io.ReadAll(resp.Body)

	var stripeErr apiError
	if err := json.Unmarshal(body, &stripeErr); err == nil && stripeErr.Error.Message != "" {
		return fmt.Errorf("stripe rejeitou %s (status %d): %s", op, resp.StatusCode, stripeErr.Error.Message)
	}
	return fmt.Errorf("stripe rejeitou %s (status %d)", op, resp.StatusCode)
}

// WithTimeNow troca o relógio (teste de tolerância de assinatura).
func (c *Client) WithTimeNow(now func() time.Time) *Client {
	c.now = now
	return c
}
