package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the payment client is configured.
type Options struct {
	SecretKey  string
	BaseURL    string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client is a lightweight facade over the Stripe REST API. Only the calls the
// donation lifecycle needs are exposed: customer + payment-intent creation on
// submit, and recurring price + subscription creation after a monthly gift
// settles. When no secret key is configured the client reports disabled and
// every call fails, which routes the service to the offline donation path.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// IntentRequest carries the donation details needed to open a charge attempt.
type IntentRequest struct {
	Amount      int64 // currency units, converted to minor units on the wire
	Currency    string
	DonorName   string
	DonorEmail  string
	Category    string
	Frequency   string
	Anonymous   bool
	Description string
	Reference   string
}

// Intent is the provider handle returned to the browser to complete payment.
type Intent struct {
	ID           string
	ClientSecret string
	CustomerID   string
}

// Subscription is the provider-side recurring plan.
type Subscription struct {
	ID     string
	Status string
}

type apiObject struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient builds a payment client. A nil HTTPClient gets a bounded-timeout
// default; provider calls must never block a request indefinitely.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.stripe.com/v1"
	}
	return &Client{
		secretKey:  opts.SecretKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

// Enabled reports whether a secret key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.secretKey != ""
}

// CreateIntent registers the donor as a customer and opens a payment intent.
// Monthly gifts request off-session reuse so the settled payment method can
// seed a subscription.
func (c *Client) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("payments: no secret key configured")
	}

	customerForm := url.Values{}
	customerForm.Set("email", req.DonorEmail)
	customerForm.Set("name", req.DonorName)
	customerForm.Set("metadata[donation_type]", req.Category)
	customerForm.Set("metadata[frequency]", req.Frequency)
	customerForm.Set("metadata[anonymous]", strconv.FormatBool(req.Anonymous))

	var customer apiObject
	if err := c.post(ctx, "/customers", customerForm, &customer); err != nil {
		return nil, fmt.Errorf("payments: create customer: %w", err)
	}

	intentForm := url.Values{}
	intentForm.Set("amount", strconv.FormatInt(req.Amount*100, 10))
	intentForm.Set("currency", strings.ToLower(req.Currency))
	intentForm.Set("customer", customer.ID)
	intentForm.Set("description", req.Description)
	intentForm.Set("receipt_email", req.DonorEmail)
	intentForm.Set("automatic_payment_methods[enabled]", "true")
	intentForm.Set("metadata[donation_type]", req.Category)
	intentForm.Set("metadata[frequency]", req.Frequency)
	intentForm.Set("metadata[anonymous]", strconv.FormatBool(req.Anonymous))
	intentForm.Set("metadata[payment_reference]", req.Reference)
	if req.Frequency == "monthly" {
		intentForm.Set("setup_future_usage", "off_session")
	}

	var intent apiObject
	if err := c.post(ctx, "/payment_intents", intentForm, &intent); err != nil {
		return nil, fmt.Errorf("payments: create intent: %w", err)
	}
	return &Intent{ID: intent.ID, ClientSecret: intent.ClientSecret, CustomerID: customer.ID}, nil
}

// CreateRecurringPrice creates a monthly price object for the given amount and
// returns its id.
func (c *Client) CreateRecurringPrice(ctx context.Context, amount int64, currency, productName string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("payments: no secret key configured")
	}
	form := url.Values{}
	form.Set("unit_amount", strconv.FormatInt(amount*100, 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("recurring[interval]", "month")
	form.Set("product_data[name]", productName)

	var price apiObject
	if err := c.post(ctx, "/prices", form, &price); err != nil {
		return "", fmt.Errorf("payments: create price: %w", err)
	}
	return price.ID, nil
}

// CreateSubscription attaches the customer to a recurring price.
func (c *Client) CreateSubscription(ctx context.Context, customerID, priceID string, metadata map[string]string) (*Subscription, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("payments: no secret key configured")
	}
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("items[0][price]", priceID)
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	var sub apiObject
	if err := c.post(ctx, "/subscriptions", form, &sub); err != nil {
		return nil, fmt.Errorf("payments: create subscription: %w", err)
	}
	return &Subscription{ID: sub.ID, Status: sub.Status}, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out *apiObject) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 {
		msg := resp.Status
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		c.logger.Error().Int("status", resp.StatusCode).Str("path", path).Msg("provider call rejected")
		return fmt.Errorf("provider rejected request: %s", msg)
	}
	return nil
}
