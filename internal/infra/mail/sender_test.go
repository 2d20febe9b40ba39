package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// O template é embutido no binário, então render não pode depender do
// diretório de onde o processo foi iniciado.
func TestRenderUnlockEmail(t *testing.T) {
	body, err := renderUnlockEmail(UnlockEmailData{CampaignURL: "example.com"})

	assert.NoError(t, err)
	assert.Contains(t, body, "example.com")
	assert.Contains(t, body, "unlocked")
}

func TestNewEmailSenderDefaultFrom(t *testing.T) {
	s := NewEmailSender("smtp.example.com", 587, "user", "pass", "")
	assert.Equal(t, "no-reply@notanothermarketer.com", s.From)
}
