package usecase

import (
	"regexp"
	"strings"

	"github.com/notanothermarketer/leadgen-api/internal/entity"
)

// Campos monetizáveis (email, URLs de perfil, textos de IA) só aparecem com
// a campanha paga. Sem pagamento, entram com o marcador "locked" — o front
// distingue "não tem dado" de "tem dado mas está travado".

var (
	reBold     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reItalic   = regexp.MustCompile(`\*(.*?)\*`)
	reNumbered = regexp.MustCompile(`(?m)^\d+\.\s+`)
)

// CleanText tira ênfase de markdown, vira lista numerada em bullet e colapsa
// linha em branco. Aplicado só nos dois textos livres da projeção paga.
func CleanText(text string) string {
	out := reBold.ReplaceAllString(text, "$1")
	out = reItalic.ReplaceAllString(out, "$1")
	out = reNumbered.ReplaceAllString(out, "• ")
	out = strings.ReplaceAll(out, "\n\n", "\n")
	return strings.TrimSpace(out)
}

// Project é função pura e determinística: mesmo (lead, isPaid), mesma saída.
func Project(lead *entity.Lead, isPaid bool) *entity.VisibleLead {
	v := &entity.VisibleLead{
		ID:          lead.ID,
		CampaignID:  lead.CampaignID,
		FullName:    lead.FullName,
		JobTitle:    lead.JobTitle,
		PhotoURL:    lead.PhotoURL,
		CompanyName: lead.CompanyName,
		CompanySize: lead.CompanySize,
		Industry:    lead.Industry,
		Country:     lead.Country,
		City:        lead.City,
		CreatedAt:   lead.CreatedAt,
	}

	if !isPaid {
		v.LeadEmail = entity.LockedMarker
		v.LinkedInURL = entity.LockedMarker
		v.CompanyWebsite = entity.LockedMarker
		v.CompanyLinkedInURL = entity.LockedMarker
		v.WhyGreatFit = entity.LockedMarker
		v.WarmIntro = entity.LockedMarker
		return v
	}

	v.LeadEmail = lead.LeadEmail
	v.LinkedInURL = lead.LinkedInURL
	v.CompanyWebsite = lead.CompanyWebsite
	v.CompanyLinkedInURL = lead.CompanyLinkedInURL
	v.WhyGreatFit = CleanText(lead.WhyGreatFit)
	v.WarmIntro = CleanText(lead.WarmIntro)
	return v
}
