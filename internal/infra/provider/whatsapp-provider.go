package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"

	"lead-connector/internal/config"
	"lead-connector/internal/domain/dto"
	"lead-connector/internal/infra/logger"
)

// InfobipWhatsAppProvider delivers outbound WhatsApp texts through the
// Infobip API. It is the notification side-effect of the catalog query
// pipeline; nothing in the lead-summarization path depends on it.
type InfobipWhatsAppProvider struct {
	Logger     *logger.Logger
	HttpClient *http.Client

	baseURL      string
	clientID     string
	clientSecret string
	fromNumber   string
}

func NewInfobipWhatsAppProvider(cfg *config.Config, log *logger.Logger, httpClient *http.Client) *InfobipWhatsAppProvider {
	return &InfobipWhatsAppProvider{
		Logger:       log,
		HttpClient:   httpClient,
		baseURL:      cfg.InfobipURL,
		clientID:     cfg.InfobipClientID,
		clientSecret: cfg.InfobipClientSecret,
		fromNumber:   cfg.WhatsAppPhoneNumber,
	}
}

// SendTextMessage sends a text message to a recipient's phone number using
// the Infobip API.
//
// Parameters:
//   - to: string - The recipient's phone number in international format (including the country code).
//   - message: string - The content of the text message to be sent.
//
// Returns:
//   - error: Returns an error if any step of the process fails, including input validation,
//     payload construction, HTTP request failure, or unexpected API response.
func (th *InfobipWhatsAppProvider) SendTextMessage(to, message string) error {
	if to == "" || message == "" {
		return eris.New("recipient (to) and message cannot be empty")
	}

	if th.baseURL == "" || th.fromNumber == "" {
		th.Logger.Error("Infobip URL or WhatsApp sender number is not configured")
		return eris.New("infobip delivery is not configured")
	}

	authToken, err := th.GenerateOAuth2Token()
	if err != nil {
		return err
	}

	payloadData := struct {
		From    string `json:"from"`
		To      string `json:"to"`
		Content struct {
			Text string `json:"text"`
		} `json:"content"`
	}{
		From: th.fromNumber,
		To:   to,
	}
	payloadData.Content.Text = message

	payload, err := json.Marshal(payloadData)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to marshal payload %v", err))
		return eris.Wrap(err, "marshal infobip payload")
	}

	endpoint := fmt.Sprintf("%s/whatsapp/1/message/text", th.baseURL)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to create HTTP request %v", err))
		return eris.Wrap(err, "create infobip request")
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", authToken.AccessToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := th.HttpClient.Do(req)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("HTTP request failed %v", err))
		return eris.Wrap(err, "infobip request failed")
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(res.Body)
		th.Logger.Error(fmt.Sprintf("Unexpected HTTP status %s response_body %s", res.Status, string(body)))
		return eris.Errorf("infobip unexpected HTTP status: %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to read response body %v", err))
		return eris.Wrap(err, "read infobip response body")
	}

	th.Logger.Info(fmt.Sprintf("Message sent successfully %s response_body %s", res.Status, string(body)))
	return nil
}

// GenerateOAuth2Token exchanges the client credentials for a short-lived
// Infobip access token.
func (th *InfobipWhatsAppProvider) GenerateOAuth2Token() (*dto.TokenResponse, error) {
	if th.clientID == "" || th.clientSecret == "" {
		return nil, eris.New("infobip client credentials are not configured")
	}

	apiURL := fmt.Sprintf("%s/auth/1/oauth2/token", th.baseURL)

	data := url.Values{}
	data.Set("client_id", th.clientID)
	data.Set("client_secret", th.clientSecret)
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewBufferString(data.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "create token request")
	}

	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Add("Accept", "application/json")

	resp, err := th.HttpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "token request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, eris.Errorf("token unexpected HTTP status: %d, response: %s", resp.StatusCode, string(body))
	}

	var tokenResponse dto.TokenResponse
	err = json.NewDecoder(resp.Body).Decode(&tokenResponse)
	if err != nil {
		return nil, eris.Wrap(err, "decode token response")
	}

	return &tokenResponse, nil
}
