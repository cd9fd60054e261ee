package payment

import (
    "context"
    "errors"
    "fmt"
    "log"
    "time"

    "scholarly-checkout-api/models"
    "scholarly-checkout-api/services/card"
)

// Service wraps the gateway client with card validation and the charge +
// subscription flow used at final checkout submission.
type Service struct {
    client *Client
}

func NewPaymentService(baseURL, merchantID, apiKey string) *Service {
    return &Service{
        client: NewClient(baseURL, merchantID, apiKey),
    }
}

// ValidateCard runs the same checks the wizard applies on step 3, as a
// last line of defense before money moves.
func (s *Service) ValidateCard(info *models.PaymentInfo) bool {
    if !card.ValidateNumber(info.CardNumber) {
        log.Printf("Card failed number validation")
        return false
    }
    network := card.Detect(info.CardNumber)
    if !card.ValidateCVV(info.CVV, network) {
        log.Printf("Card failed CVV validation")
        return false
    }
    if !card.ValidateExpiry(info.ExpiryDate, time.Now()) {
        log.Printf("Card failed expiry validation")
        return false
    }
    return true
}

// Charge runs the full amount through the gateway. A declined charge comes
// back with Success=false and no error; a timeout surfaces as
// ErrGatewayTimeout.
func (s *Service) Charge(ctx context.Context, order *models.OrderRequest, amount float64, reference string) (*models.ChargeResponse, error) {
    ctx, cancel := context.WithTimeout(ctx, ChargeTimeout)
    defer cancel()

    req := chargeRequest{
        MerchantID: s.client.merchantID,
        Reference:  reference,
        Amount:     amount,
        Currency:   "USD",
        CardNumber: order.PaymentInfo.CardNumber,
        Expiry:     order.PaymentInfo.ExpiryDate,
        CVV:        order.PaymentInfo.CVV,
        Cardholder: fmt.Sprintf("%s %s", order.FirstName, order.LastName),
    }

    var resp chargeResponse
    if err := s.client.post(ctx, "/v1/charges", req, &resp); err != nil {
        if errors.Is(err, ErrGatewayTimeout) {
            return nil, ErrGatewayTimeout
        }
        return nil, fmt.Errorf("charge request failed: %v", err)
    }

    result := &models.ChargeResponse{
        Success:       resp.Success,
        TransactionID: resp.TransactionID,
        Message:       resp.Message,
    }
    if !resp.Success {
        log.Printf("Charge declined for reference %s: %s", reference, resp.Message)
    }
    return result, nil
}

// CreateSubscription sets up recurring billing tied to the initial charge.
func (s *Service) CreateSubscription(ctx context.Context, transactionID, reference string,
    amount float64, cycle models.BillingCycle) (*models.SubscriptionResponse, error) {

    ctx, cancel := context.WithTimeout(ctx, ChargeTimeout)
    defer cancel()

    interval := "month"
    if cycle == models.BillingAnnual {
        interval = "year"
    }

    req := subscriptionRequest{
        MerchantID:    s.client.merchantID,
        TransactionID: transactionID,
        Reference:     reference,
        Amount:        amount,
        Interval:      interval,
    }

    var resp subscriptionResponse
    if err := s.client.post(ctx, "/v1/subscriptions", req, &resp); err != nil {
        return nil, fmt.Errorf("subscription request failed: %v", err)
    }

    if !resp.Success || resp.SubscriptionID == "" {
        return nil, fmt.Errorf("subscription creation failed: %s", resp.Message)
    }

    return &models.SubscriptionResponse{
        Success:        true,
        SubscriptionID: resp.SubscriptionID,
        Message:        resp.Message,
    }, nil
}
