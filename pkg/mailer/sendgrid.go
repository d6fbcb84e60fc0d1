package mailer

import (
	"catalog-service/config"
	"context"
	"fmt"
	"github.com/go-resty/resty/v2"
	"time"
)

type SendGrid struct {
	client *resty.Client
	from   string
}

type address struct {
	Email string `json:"email"`
}

type personalization struct {
	To []address `json:"to"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

func NewSendGrid(cfg config.Mail) *SendGrid {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &SendGrid{client: client, from: cfg.From}
}

// Send delivers a plain-text mail through the v3 mail/send endpoint.
func (m *SendGrid) Send(ctx context.Context, to, subject, body string) error {
	req := sendRequest{
		Personalizations: []personalization{{To: []address{{Email: to}}}},
		From:             address{Email: m.from},
		Subject:          subject,
		Content:          []content{{Type: "text/plain", Value: body}},
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/v3/mail/send")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
