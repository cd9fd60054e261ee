package database

import (
    "database/sql"
    "encoding/json"
    "fmt"
    "log"

    "scholarly-checkout-api/models"
)

// GetPlans returns the purchasable plan catalog.
func (c *Connection) GetPlans() ([]models.Plan, error) {
    rows, err := c.db.Query(`
        SELECT id, name, monthly_price, annual_price, features_json
        FROM plans
        WHERE deleted_at IS NULL
        ORDER BY monthly_price ASC
    `)
    if err != nil {
        return nil, fmt.Errorf("failed to query plans: %v", err)
    }
    defer rows.Close()

    var plans []models.Plan
    for rows.Next() {
        var plan models.Plan
        var featuresJSON string
        if err := rows.Scan(&plan.ID, &plan.Name, &plan.MonthlyPrice, &plan.AnnualPrice, &featuresJSON); err != nil {
            return nil, fmt.Errorf("failed to scan plan: %v", err)
        }
        if err := json.Unmarshal([]byte(featuresJSON), &plan.Features); err != nil {
            log.Printf("Warning: bad features json for plan %s: %v", plan.ID, err)
            plan.Features = []string{}
        }
        plans = append(plans, plan)
    }
    return plans, rows.Err()
}

// GetPlanByID fetches a single plan; sql.ErrNoRows passes through so
// callers can distinguish a missing plan.
func (c *Connection) GetPlanByID(planID string) (*models.Plan, error) {
    var plan models.Plan
    var featuresJSON string

    err := c.db.QueryRow(`
        SELECT id, name, monthly_price, annual_price, features_json
        FROM plans
        WHERE id = ? AND deleted_at IS NULL
    `, planID).Scan(&plan.ID, &plan.Name, &plan.MonthlyPrice, &plan.AnnualPrice, &featuresJSON)
    if err != nil {
        return nil, err
    }

    if err := json.Unmarshal([]byte(featuresJSON), &plan.Features); err != nil {
        plan.Features = []string{}
    }
    return &plan, nil
}

// GetPlanByName fetches a plan by its display name, used when the wizard
// carries a plan name picked on the marketing pages.
func (c *Connection) GetPlanByName(name string) (*models.Plan, error) {
    var plan models.Plan
    var featuresJSON string

    err := c.db.QueryRow(`
        SELECT id, name, monthly_price, annual_price, features_json
        FROM plans
        WHERE name = ? AND deleted_at IS NULL
    `, name).Scan(&plan.ID, &plan.Name, &plan.MonthlyPrice, &plan.AnnualPrice, &featuresJSON)
    if err != nil {
        return nil, err
    }

    if err := json.Unmarshal([]byte(featuresJSON), &plan.Features); err != nil {
        plan.Features = []string{}
    }
    return &plan, nil
}

// GetPromoCode looks up a promo code. Returns nil without error when the
// code does not exist.
func (c *Connection) GetPromoCode(code string) (*models.PromoCode, error) {
    var promo models.PromoCode
    var active int
    var expired int

    err := c.db.QueryRow(`
        SELECT code, discount_percent, min_amount, is_active,
               (expires_at IS NOT NULL AND expires_at < NOW()) AS expired
        FROM promo_codes
        WHERE code = ?
    `, code).Scan(&promo.Code, &promo.DiscountPercent, &promo.MinAmount, &active, &expired)

    if err == sql.ErrNoRows {
        return nil, nil
    }
    if err != nil {
        return nil, fmt.Errorf("failed to query promo code: %v", err)
    }

    promo.Active = active == 1
    promo.Expired = expired == 1
    return &promo, nil
}

// EmailExists reports whether a user account already exists for the email.
func (c *Connection) EmailExists(email string) (bool, error) {
    var exists bool
    err := c.db.QueryRow(`
        SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)
    `, email).Scan(&exists)
    if err != nil {
        return false, fmt.Errorf("failed to check email existence: %v", err)
    }
    return exists, nil
}

// GetUserByEmail loads the credentials row used by dashboard sign-in.
func (c *Connection) GetUserByEmail(email string) (*models.OrderUser, string, error) {
    var user models.OrderUser
    var passphrase string

    err := c.db.QueryRow(`
        SELECT id, first_name, last_name, email, institution_name, passphrase
        FROM users
        WHERE email = ?
    `, email).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.InstitutionName, &passphrase)
    if err != nil {
        return nil, "", err
    }
    return &user, passphrase, nil
}

// GetSubscriptionByUser loads the active subscription for the dashboard
// summary.
func (c *Connection) GetSubscriptionByUser(userID string) (*models.OrderSubscription, error) {
    var sub models.OrderSubscription

    err := c.db.QueryRow(`
        SELECT s.id, s.plan_id, p.name, s.billing_cycle, s.total_amount,
               DATE_FORMAT(s.renew_date, '%Y-%m-%d')
        FROM subscriptions s
        JOIN plans p ON p.id = s.plan_id
        WHERE s.user_id = ? AND s.status = 'active'
        ORDER BY s.created_at DESC
        LIMIT 1
    `, userID).Scan(&sub.ID, &sub.PlanID, &sub.PlanName, &sub.BillingCycle, &sub.TotalAmount, &sub.RenewDate)
    if err != nil {
        return nil, err
    }
    return &sub, nil
}
