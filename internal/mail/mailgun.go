package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const verifyEmailTemplate = "verify-email"

// Mailgun APIに1件ずつ送るだけのクライアント
type Client struct {
	baseURL string
	apiKey  string
	domain  string
	from    string
	http    *http.Client
}

func NewClient(baseURL, apiKey, domain, fromEmail string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		domain:  domain,
		from:    fromEmail,
		http: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type Email struct {
	To       string
	Subject  string
	Template string
	Vars     map[string]string
}

func (c *Client) Send(ctx context.Context, e Email) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := [][2]string{
		{"from", fmt.Sprintf("Nuber Eats <%s>", c.from)},
		{"to", e.To},
		{"subject", e.Subject},
		{"template", e.Template},
	}
	for k, v := range e.Vars {
		fields = append(fields, [2]string{"v:" + k, v})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("write mail field %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close mail form: %w", err)
	}

	url := fmt.Sprintf("%s/v3/%s/messages", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.SetBasicAuth("api", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mailgun request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mailgun non-2xx (%d): %s", resp.StatusCode, string(b))
	}
	return nil
}

// 認証コード入りのメール
func (c *Client) SendVerificationEmail(ctx context.Context, to, code string) error {
	return c.Send(ctx, Email{
		To:       to,
		Subject:  "Verify Your Email",
		Template: verifyEmailTemplate,
		Vars: map[string]string{
			"code":     code,
			"username": to,
		},
	})
}
