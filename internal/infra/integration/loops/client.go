package loops

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/notanothermarketer/leadgen-api/internal/infra/http/middleware"
)

// Client do Loops.so (lista de marketing). Tudo aqui é best-effort: se o
// Loops cair, ninguém perde campanha.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://app.loops.so/api/v1",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type contactRequest struct {
	Email          string            `json:"email"`
	Subscribed     bool              `json:"subscribed"`
	UserProperties map[string]string `json:"userProperties,omitempty"`
}

func (c *Client) UpsertContact(ctx context.Context, email, website, source string) error {
	if c.apiKey == "" {
		log.Println("⚠️ Loops: API_KEY não configurado")
		return fmt.Errorf("loops não configurado")
	}

	payload := contactRequest{
		Email:      email,
		Subscribed: true,
		UserProperties: map[string]string{
			"website":    website,
			"source":     source,
			"signupDate": time.Now().UTC().Format(time.RFC3339),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/contacts/create", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("loops")
		return fmt.Errorf("erro request loops: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		// Contato duplicado é normal pra visitante recorrente, não conta
		// como erro de integração.
		if resp.StatusCode == http.StatusConflict {
			log.Printf("ℹ️ Loops: contato %s já existe", email)
			return nil
		}
		middleware.RecordIntegrationError("loops")
		return fmt.Errorf("loops rejeitou contato (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
