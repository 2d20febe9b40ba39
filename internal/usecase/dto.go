package usecase

import "github.com/notanothermarketer/leadgen-api/internal/entity"

type ResolveCampaignInput struct {
	URL    string `json:"url"`
	Email  string `json:"email"`
	UserID string `json:"user_id,omitempty"`
}

type ResolveCampaignOutput struct {
	Campaign *entity.Campaign `json:"campaign"`
	Created  bool             `json:"created"`
}

type ListLeadsInput struct {
	CampaignID string
	PageSize   int // janela total desejada (o front alarga: 20, 40, 60...)
	PriorCount int // quantos o caller já tinha na tela
}

type ListLeadsOutput struct {
	Leads          []*entity.VisibleLead `json:"leads"`
	TotalDelivered int                   `json:"total_delivered"`
	HasMore        bool                  `json:"has_more"`
	Paid           bool                  `json:"paid"`
}

type CreateCheckoutOutput struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}

type ExportLeadsOutput struct {
	Filename string
	CSV      []byte
	Rows     int
}
