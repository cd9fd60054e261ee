package models

import "time"

type AuthRequest struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type AuthResponse struct {
    Token        string    `json:"token"`
    RefreshToken string    `json:"refresh_token"`
    ExpiresAt    time.Time `json:"expires_at"`
    User         OrderUser `json:"user"`
}

// DashboardSummary is the data behind the dashboard shell after sign-in.
type DashboardSummary struct {
    User         OrderUser          `json:"user"`
    Subscription *OrderSubscription `json:"subscription,omitempty"`
}
