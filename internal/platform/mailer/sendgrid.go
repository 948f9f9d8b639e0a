package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/okulpusula/pusula-backend/internal/pkg/envutil"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

// Client sends transactional mail through the SendGrid v3 API. The engine
// only ever sends short plain-text escalation notices, so the surface is
// deliberately small.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Message struct {
	To      []Address
	Subject string
	Text    string
}

type Config struct {
	APIKey    string
	BaseURL   string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		APIKey:    strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
		BaseURL:   strings.TrimSpace(os.Getenv("SENDGRID_BASE_URL")),
		FromEmail: strings.TrimSpace(os.Getenv("SENDGRID_FROM_EMAIL")),
		FromName:  strings.TrimSpace(os.Getenv("SENDGRID_FROM_NAME")),
		Timeout:   time.Duration(envutil.Int("SENDGRID_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing SENDGRID_API_KEY")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("missing SENDGRID_FROM_EMAIL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.sendgrid.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &client{
		log:        log.With("client", "SendGridClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             Address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
}

type personalization struct {
	To []Address `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (c *client) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("sendgrid: To required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("sendgrid: Subject required")
	}
	if strings.TrimSpace(msg.Text) == "" {
		return fmt.Errorf("sendgrid: Text required")
	}

	wire := mailSendRequest{
		Personalizations: []personalization{{To: msg.To}},
		From:             Address{Email: c.cfg.FromEmail, Name: c.cfg.FromName},
		Subject:          msg.Subject,
		Content:          []mailContent{{Type: "text/plain", Value: msg.Text}},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(wire); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v3/mail/send", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := strings.TrimSpace(string(raw))
		if len(body) > 2000 {
			body = body[:2000] + "..."
		}
		return fmt.Errorf("sendgrid http %d: %s", resp.StatusCode, body)
	}

	c.log.Info("Escalation mail sent",
		"recipients", len(msg.To),
		"message_id", strings.TrimSpace(resp.Header.Get("X-Message-Id")),
	)
	return nil
}
