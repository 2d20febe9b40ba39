package mail

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

// Template embutido no binário: o envio não pode depender de onde o
// processo foi iniciado.
//
//go:embed templates/unlock.html
var templatesFS embed.FS

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	if from == "" {
		from = "no-reply@notanothermarketer.com"
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendUnlockReceipt avisa o dono que os leads da campanha foram destravados.
func (s *EmailSender) SendUnlockReceipt(to, campaignURL string) error {
	body, err := renderUnlockEmail(UnlockEmailData{CampaignURL: campaignURL})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your leads are unlocked 🔓")
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

func renderUnlockEmail(data UnlockEmailData) (string, error) {
	t, err := template.ParseFS(templatesFS, "templates/unlock.html")
	if err != nil {
		return "", fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}

	return body.String(), nil
}
