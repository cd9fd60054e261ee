package models

type APIResponse struct {
    Status    string       `json:"status"`
    Message   string       `json:"message"`
    ErrorCode string       `json:"error_code,omitempty"`
    Errors    []FieldError `json:"errors,omitempty"`
    Data      interface{}  `json:"data,omitempty"`
}

// FieldError is the structured field-level error contract shared by
// client-side style validation and backend rejection: a field name plus a
// machine-readable code the UI resolves to a localized message. The backend
// never sends free-text sentences for the client to pattern-match.
type FieldError struct {
    Field string `json:"field"`
    Code  string `json:"code"`
}

type ChargeResponse struct {
    Success       bool   `json:"success"`
    TransactionID string `json:"transaction_id"`
    Message       string `json:"message"`
    Error         string `json:"error,omitempty"`
    IsDuplicate   bool   `json:"is_duplicate,omitempty"`
}

type SubscriptionResponse struct {
    Success        bool   `json:"success"`
    SubscriptionID string `json:"subscription_id"`
    Message        string `json:"message"`
    Error          string `json:"error,omitempty"`
}
