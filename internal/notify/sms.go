package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/garilangu/gari-langu/internal/config"
	"github.com/garilangu/gari-langu/internal/lib/sl"
)

// SMSSender delivers text messages through an HTTP gateway in the style of
// the Tanzanian bulk-SMS providers (JSON body, bearer key).
type SMSSender struct {
	apiURL     string
	apiKey     string
	senderID   string
	httpClient *http.Client
	log        *slog.Logger
}

type smsRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// NewSMSSender creates a new SMSSender from config.
func NewSMSSender(cfg config.SMSGateway, log *slog.Logger) *SMSSender {
	return &SMSSender{
		apiURL:     cfg.SMSAPIURL,
		apiKey:     cfg.SMSAPIKey,
		senderID:   cfg.SMSSenderID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// IsConfigured reports whether a gateway URL is set.
func (s *SMSSender) IsConfigured() bool {
	return s.apiURL != ""
}

// Send delivers one SMS. Returns ErrNotConfigured when no gateway URL is
// set.
func (s *SMSSender) Send(phone, message string) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(smsRequest{
		From:    s.senderID,
		To:      phone,
		Message: message,
	}); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Error("failed to call SMS gateway", sl.Err(err))
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		s.log.Error("sms gateway returned unexpected status", slog.String("status", resp.Status))
		return errors.New("unexpected status: " + resp.Status)
	}

	s.log.Info("sms sent", slog.String("to", phone))
	return nil
}
