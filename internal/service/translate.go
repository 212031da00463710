package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

// DefaultTranslatorEndpoint is the third-party translation endpoint.
const DefaultTranslatorEndpoint = "https://api.microsofttranslator.com/v2/Ajax.svc/Translate"

// TranslateService proxies a single synchronous call to the external
// translation endpoint. Failures surface as user-facing error strings in
// the normal response shape, never as transport errors.
type TranslateService struct {
	client   *http.Client
	apiKey   string
	endpoint string
}

func NewTranslateService(apiKey string) *TranslateService {
	return &TranslateService{
		client:   http.DefaultClient,
		apiKey:   apiKey,
		endpoint: DefaultTranslatorEndpoint,
	}
}

// NewTranslateServiceWithEndpoint is used by tests to point at a stub server.
func NewTranslateServiceWithEndpoint(apiKey, endpoint string, client *http.Client) *TranslateService {
	if client == nil {
		client = http.DefaultClient
	}
	return &TranslateService{
		client:   client,
		apiKey:   apiKey,
		endpoint: endpoint,
	}
}

// Translate performs one GET against the remote service and relays its
// JSON payload verbatim. No retry, no caching.
func (s *TranslateService) Translate(ctx context.Context, text, sourceLang, destLang string) json.RawMessage {
	if s.apiKey == "" {
		return errorText("Error: the translation service is not configured.")
	}

	query := url.Values{}
	query.Set("text", text)
	query.Set("from", sourceLang)
	query.Set("to", destLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to build translation request")
		return errorText("Error: the translation service failed.")
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("translation request failed")
		return errorText("Error: the translation service failed.")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("translation service returned non-200")
		return errorText("Error: the translation service failed.")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Msg("failed to read translation response")
		return errorText("Error: the translation service failed.")
	}

	// The service prefixes its JSON with a UTF-8 BOM
	body = bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))

	if !json.Valid(body) {
		return errorText("Error: the translation service failed.")
	}

	return json.RawMessage(body)
}

func errorText(msg string) json.RawMessage {
	data, _ := json.Marshal(msg)
	return data
}
