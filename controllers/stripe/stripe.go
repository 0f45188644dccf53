package stripeControllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// LineItem is one row of a payment session request: product name, image,
// unit price in minor currency units, quantity fixed at 1 per line.
type LineItem struct {
	Name       string
	ImageURL   string
	UnitAmount int64
	Quantity   int
}

// CheckoutSession is the subset of the Stripe session object the checkout
// flow cares about.
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"` // "paid" | "unpaid" | "no_payment_required"
	Error         *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// getStripeConfig reads the payment API settings. STRIPE_API_URL normally
// points at https://api.stripe.com/v1 and is overridden in tests.
func getStripeConfig() (apiURL, secretKey, successURL, cancelURL string, err error) {
	apiURL = os.Getenv("STRIPE_API_URL")
	secretKey = os.Getenv("STRIPE_SECRET_KEY")
	successURL = os.Getenv("STRIPE_SUCCESS_URL")
	cancelURL = os.Getenv("STRIPE_CANCEL_URL")

	if apiURL == "" || secretKey == "" || successURL == "" || cancelURL == "" {
		return "", "", "", "", fmt.Errorf("stripe configuration missing")
	}
	return apiURL, secretKey, successURL, cancelURL, nil
}

// CreateCheckoutSession asks Stripe for a hosted payment page covering the
// given line items and returns the session id and redirect URL.
func CreateCheckoutSession(items []LineItem) (*CheckoutSession, error) {
	apiURL, secretKey, successURL, cancelURL, err := getStripeConfig()
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.ImageURL != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", item.ImageURL)
		}
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}

	return doStripeRequest("POST", apiURL+"/checkout/sessions", secretKey, form)
}

// RetrieveCheckoutSession fetches a session so its payment status can be
// verified server-side instead of trusting the redirect query string.
func RetrieveCheckoutSession(sessionID string) (*CheckoutSession, error) {
	apiURL, secretKey, _, _, err := getStripeConfig()
	if err != nil {
		return nil, err
	}
	return doStripeRequest("GET", apiURL+"/checkout/sessions/"+url.PathEscape(sessionID), secretKey, nil)
}

func doStripeRequest(method, endpoint, secretKey string, form url.Values) (*CheckoutSession, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Stripe: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var session CheckoutSession
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("failed to parse Stripe response: %v", err)
	}
	if session.Error != nil {
		return nil, fmt.Errorf("stripe error: %s", session.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return &session, nil
}
