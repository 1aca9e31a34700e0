package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"beautify/pkg/logger"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "https://api.stripe.com"
	currency       = "usd"
	paymentMethod  = "card"
)

// ErrNotConfigured is returned when no secret key is set and dry run is off.
var ErrNotConfigured = errors.New("stripe: secret key not configured")

// IntentClient creates card PaymentIntents over the Stripe REST API.
type IntentClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	dryRun     bool
	log        *logger.Logger
}

func NewIntentClient(secretKey string, log *logger.Logger) *IntentClient {
	return &IntentClient{
		secretKey:  secretKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// WithBaseURL points the client at another API host.
func (c *IntentClient) WithBaseURL(baseURL string) *IntentClient {
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	return c
}

// WithDryRun makes CreateIntent return a fake client secret without calling Stripe.
func (c *IntentClient) WithDryRun(enabled bool) *IntentClient {
	c.dryRun = enabled
	return c
}

type paymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// AmountCents converts a dollar price to the integer minor unit Stripe expects.
func AmountCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent creates a PaymentIntent for price dollars and returns its
// client secret.
func (c *IntentClient) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := AmountCents(price)

	if c.dryRun {
		fakeID := "pi_dryrun_" + uuid.NewString()[:8]
		c.log.Info("stripe dry run: skipping payment intent creation", "amount_cents", amount)
		return fakeID + "_secret_" + uuid.NewString()[:8], nil
	}
	if c.secretKey == "" {
		return "", ErrNotConfigured
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", paymentMethod)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("stripe: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("stripe: http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var parsed apiError
		if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("stripe: api status %d: %s: %s", resp.StatusCode, parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("stripe: api status %d: %s", resp.StatusCode, string(body))
	}

	var intent paymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", fmt.Errorf("stripe: decode: %w", err)
	}
	if intent.ClientSecret == "" {
		return "", errors.New("stripe: response missing client secret")
	}

	c.log.Info("stripe payment intent created", "intent_id", intent.ID, "amount_cents", amount)
	return intent.ClientSecret, nil
}
