package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCampaign(t *testing.T) {
	campaign, err := NewCampaign("  example.com  ", " a@b.com ", "")

	assert.NoError(t, err)
	assert.NotEmpty(t, campaign.ID)
	assert.Equal(t, "example.com", campaign.URL)
	assert.Equal(t, "a@b.com", campaign.Email)
	assert.False(t, campaign.PaidStatus)
	assert.True(t, campaign.IsAnonymous())
	assert.False(t, campaign.CreatedAt.IsZero())
}

func TestNewCampaignValidation(t *testing.T) {
	_, err := NewCampaign("", "a@b.com", "")
	assert.Error(t, err)

	_, err = NewCampaign("example.com", "   ", "")
	assert.Error(t, err)
}

func TestCampaignIsAnonymous(t *testing.T) {
	campaign, err := NewCampaign("example.com", "a@b.com", "user-1")
	assert.NoError(t, err)
	assert.False(t, campaign.IsAnonymous())
}

func TestLeadDelivered(t *testing.T) {
	assert.True(t, (&Lead{Sent: LeadSentYes}).Delivered())
	assert.False(t, (&Lead{Sent: LeadSentNo}).Delivered())
	assert.False(t, (&Lead{}).Delivered())
}
