package mail

type UnlockEmailData struct {
	CampaignURL string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
