package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// CaptchaVerifier valida tokens de captcha enviados desde el frontend.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) bool
}

// RecaptchaVerifier implementa CaptchaVerifier contra el endpoint siteverify
// de Google. Cualquier fallo de red o de parseo cuenta como token inválido.
type RecaptchaVerifier struct {
	secret    string
	verifyURL string
	client    *http.Client
}

func NewRecaptchaVerifier(secret string) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secret:    secret,
		verifyURL: recaptchaVerifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) bool {
	token = strings.TrimSpace(token)
	if token == "" || v.secret == "" {
		return false
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false
	}
	return result.Success
}

type staticCaptchaVerifier struct {
	result bool
}

// NewStaticCaptchaVerifier devuelve un verificador de resultado fijo.
// Útil en tests y en modo desarrollo sin secreto de reCAPTCHA configurado.
func NewStaticCaptchaVerifier(result bool) CaptchaVerifier {
	return &staticCaptchaVerifier{result: result}
}

func (v *staticCaptchaVerifier) Verify(_ context.Context, token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	return v.result
}
