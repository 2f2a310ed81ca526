package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const zeptoEndpoint = "https://api.zeptomail.in/v1.1/email"

// Sender is an interface for sending transactional email
type Sender interface {
	Send(to, toName, subject, htmlBody string) error
}

// ZeptoMailService implements Sender for the ZeptoMail HTTP API
type ZeptoMailService struct {
	APIKey      string
	FromAddress string
	FromName    string
	endpoint    string
	client      *http.Client
}

func NewZeptoMailService(apiKey, fromAddress, fromName string) *ZeptoMailService {
	return &ZeptoMailService{
		APIKey:      apiKey,
		FromAddress: fromAddress,
		FromName:    fromName,
		endpoint:    zeptoEndpoint,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

type zeptoAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type zeptoRecipient struct {
	EmailAddress zeptoAddress `json:"email_address"`
}

type zeptoPayload struct {
	From     zeptoAddress     `json:"from"`
	To       []zeptoRecipient `json:"to"`
	Subject  string           `json:"subject"`
	HTMLBody string           `json:"htmlbody"`
}

// Send delivers a single email. Failures are logged and returned so
// callers can decide whether delivery is fatal for the operation.
func (z *ZeptoMailService) Send(to, toName, subject, htmlBody string) error {
	if z.APIKey == "" {
		log.Printf("[Mail] ZEPTO_API_KEY not set, skipping email to %s", to)
		return nil
	}

	payload := zeptoPayload{
		From:     zeptoAddress{Address: z.FromAddress, Name: z.FromName},
		To:       []zeptoRecipient{{EmailAddress: zeptoAddress{Address: to, Name: toName}}},
		Subject:  subject,
		HTMLBody: htmlBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, z.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Zoho-enczapikey "+z.APIKey)

	resp, err := z.client.Do(req)
	if err != nil {
		log.Printf("[Mail] Failed to send email to %s: %v", to, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Printf("[Mail] ZeptoMail returned %d for %s: %s", resp.StatusCode, to, string(respBody))
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}

	return nil
}

// NoopSender is used when mail is not configured (development, tests).
type NoopSender struct{}

func (NoopSender) Send(to, toName, subject, htmlBody string) error {
	log.Printf("[Mail] (noop) would send %q to %s", subject, to)
	return nil
}
