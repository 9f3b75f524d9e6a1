package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

// SendResponseReceivedEmail tells a requester that someone prayed over
// their request and left a response. Best-effort: callers fire this from a
// goroutine and only log failures.
func (s *EmailService) SendResponseReceivedEmail(toEmail string, requesterName string, prayerTitle string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #7a9cc6;
        }
        .header h1 {
            color: #7a9cc6;
            margin: 0;
        }
        .content {
            padding: 30px 0;
        }
        .prayer-title {
            background-color: #f5f5f5;
            border-left: 4px solid #7a9cc6;
            border-radius: 4px;
            padding: 15px 20px;
            margin: 20px 0;
            font-weight: bold;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>prayerbridge</h1>
    </div>

    <div class="content">
        <h2>Someone prayed for you</h2>

        <p>Hi %s,</p>

        <p>An intercessor has prayed over your request and left a response:</p>

        <div class="prayer-title">%s</div>

        <p>Sign in to read it on your prayer dashboard.</p>

        <p>Blessings,<br>The prayerbridge Team</p>
    </div>

    <div class="footer">
        <p>This is an automated message, please do not reply directly to this email.</p>
    </div>
</body>
</html>
`, requesterName, prayerTitle)

	textBody := fmt.Sprintf(`
Someone prayed for you

Hi %s,

An intercessor has prayed over your request "%s" and left a response.
Sign in to read it on your prayer dashboard.

Blessings,
The prayerbridge Team
`, requesterName, prayerTitle)

	params := &resend.SendEmailRequest{
		From:    fromAddress(),
		To:      []string{toEmail},
		Subject: "Your prayer request received a response",
		Html:    htmlBody,
		Text:    textBody,
	}

	_, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send response email: %w", err)
	}

	return nil
}

func fromAddress() string {
	if from := os.Getenv("EMAIL_FROM"); from != "" {
		return from
	}
	return "prayerbridge <noreply@prayerbridge.app>"
}
