package sms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"madrasahku_backend/internals/configs"
)

// Textbelt is a bare HTTP API (no SDK): POST phone/message/key as a form,
// JSON back with {"success": bool, "error": "..."}.

var httpClient = &http.Client{Timeout: 10 * time.Second}

type textbeltResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	TextID  any    `json:"textId"`
}

// Send delivers one SMS. Phone must already be E.164.
func Send(phone, message string) error {
	if configs.TextbeltKey == "" {
		return fmt.Errorf("TEXTBELT_KEY is not set")
	}

	form := url.Values{
		"phone":   {phone},
		"message": {message},
		"key":     {configs.TextbeltKey},
	}
	resp, err := httpClient.PostForm(configs.TextbeltURL, form)
	if err != nil {
		return fmt.Errorf("textbelt: %w", err)
	}
	defer resp.Body.Close()

	var out textbeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("textbelt: bad response: %w", err)
	}
	if !out.Success {
		msg := strings.TrimSpace(out.Error)
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("textbelt: %s", msg)
	}
	return nil
}
