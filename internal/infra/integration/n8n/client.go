package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/notanothermarketer/leadgen-api/internal/infra/http/middleware"
	"github.com/notanothermarketer/leadgen-api/internal/infra/queue"
)

// Client chama o webhook do n8n que inicia o pipeline de enriquecimento.
// O algoritmo do pipeline é caixa-preta pra gente: manda
// {url, email, campaignId} e pronto. Sem retry — at-most-once.
type Client struct {
	webhookURL string
	http       *http.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Notify(ctx context.Context, payload queue.CampaignCreatedPayload) error {
	if c.webhookURL == "" {
		return fmt.Errorf("n8n webhook não configurado")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("n8n")
		return fmt.Errorf("erro request n8n: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		middleware.RecordIntegrationError("n8n")
		return fmt.Errorf("n8n rejeitou gatilho (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
