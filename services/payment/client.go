package payment

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "time"
)

const (
    // ChargeTimeout bounds the final checkout charge.
    ChargeTimeout = 30 * time.Second
)

// ErrGatewayTimeout is returned when the gateway does not answer inside
// the deadline, distinct from a gateway-rejected charge.
var ErrGatewayTimeout = errors.New("payment gateway timed out")

// Client talks JSON to the payment gateway.
type Client struct {
    baseURL    string
    merchantID string
    apiKey     string
    client     *http.Client
}

func NewClient(baseURL, merchantID, apiKey string) *Client {
    transport := &http.Transport{
        MaxIdleConns:        100,
        MaxIdleConnsPerHost: 20,
        MaxConnsPerHost:     100,
        IdleConnTimeout:     90 * time.Second,
        TLSHandshakeTimeout: 10 * time.Second,
    }

    return &Client{
        baseURL:    baseURL,
        merchantID: merchantID,
        apiKey:     apiKey,
        client: &http.Client{
            Timeout:   ChargeTimeout,
            Transport: transport,
        },
    }
}

type chargeRequest struct {
    MerchantID string  `json:"merchant_id"`
    Reference  string  `json:"reference"`
    Amount     float64 `json:"amount"`
    Currency   string  `json:"currency"`
    CardNumber string  `json:"card_number"`
    Expiry     string  `json:"expiry"`
    CVV        string  `json:"cvv"`
    Cardholder string  `json:"cardholder"`
}

type chargeResponse struct {
    Success       bool   `json:"success"`
    TransactionID string `json:"transaction_id"`
    Declined      bool   `json:"declined"`
    Message       string `json:"message"`
}

type subscriptionRequest struct {
    MerchantID    string  `json:"merchant_id"`
    TransactionID string  `json:"transaction_id"`
    Reference     string  `json:"reference"`
    Amount        float64 `json:"amount"`
    Interval      string  `json:"interval"`
}

type subscriptionResponse struct {
    Success        bool   `json:"success"`
    SubscriptionID string `json:"subscription_id"`
    Message        string `json:"message"`
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
    body, err := json.Marshal(payload)
    if err != nil {
        return fmt.Errorf("failed to marshal gateway request: %v", err)
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
    if err != nil {
        return fmt.Errorf("failed to build gateway request: %v", err)
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("Authorization", "Bearer "+c.apiKey)

    resp, err := c.client.Do(req)
    if err != nil {
        if errors.Is(err, context.DeadlineExceeded) {
            return ErrGatewayTimeout
        }
        return fmt.Errorf("gateway request failed: %v", err)
    }
    defer resp.Body.Close()

    data, err := io.ReadAll(resp.Body)
    if err != nil {
        return fmt.Errorf("failed to read gateway response: %v", err)
    }

    if resp.StatusCode >= 500 {
        return fmt.Errorf("gateway error: status %d", resp.StatusCode)
    }

    if err := json.Unmarshal(data, out); err != nil {
        return fmt.Errorf("failed to decode gateway response: %v", err)
    }
    return nil
}
