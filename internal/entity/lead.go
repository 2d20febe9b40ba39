package entity

import (
	"errors"
	"time"
)

// Valores da coluna "sent" (flag de entrega do pipeline).
const (
	LeadSentYes = "yes"
	LeadSentNo  = "no"
)

var ErrNoLeadsFound = errors.New("nenhum lead encontrado para esta campanha")

// Lead é um prospect enriquecido pelo pipeline externo.
// Este serviço NUNCA cria, altera ou deleta leads pelo caminho público —
// só o pipeline escreve (via API de ingest autenticada por token).
type Lead struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	Sent       string `json:"sent"` // yes | no

	FullName           string `json:"full_name,omitempty"`
	JobTitle           string `json:"job_title,omitempty"`
	PhotoURL           string `json:"photo_url,omitempty"`
	LinkedInURL        string `json:"linkedin_url,omitempty"`
	CompanyName        string `json:"company_name,omitempty"`
	CompanyWebsite     string `json:"company_website,omitempty"`
	CompanyLinkedInURL string `json:"company_linkedin_url,omitempty"`
	CompanySize        string `json:"company_size,omitempty"`
	Industry           string `json:"industry,omitempty"`
	Country            string `json:"country,omitempty"`
	City               string `json:"city,omitempty"`
	LeadEmail          string `json:"lead_email,omitempty"`
	WhyGreatFit        string `json:"whygreatfit,omitempty"`
	WarmIntro          string `json:"warmintro,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Delivered: só leads entregues contam e aparecem na listagem.
func (l *Lead) Delivered() bool {
	return l.Sent == LeadSentYes
}

// LockedMarker substitui os campos pagos na projeção de campanha não paga.
// É um marcador explícito ("tem dado, mas está travado"), não um null.
const LockedMarker = "locked"

// VisibleLead é a projeção de um Lead restrita pela flag de pagamento da
// campanha. Derivada, nunca persistida.
type VisibleLead struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`

	FullName           string `json:"full_name,omitempty"`
	JobTitle           string `json:"job_title,omitempty"`
	PhotoURL           string `json:"photo_url,omitempty"`
	LinkedInURL        string `json:"linkedin_url,omitempty"`
	CompanyName        string `json:"company_name,omitempty"`
	CompanyWebsite     string `json:"company_website,omitempty"`
	CompanyLinkedInURL string `json:"company_linkedin_url,omitempty"`
	CompanySize        string `json:"company_size,omitempty"`
	Industry           string `json:"industry,omitempty"`
	Country            string `json:"country,omitempty"`
	City               string `json:"city,omitempty"`
	LeadEmail          string `json:"lead_email,omitempty"`
	WhyGreatFit        string `json:"whygreatfit,omitempty"`
	WarmIntro          string `json:"warmintro,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
