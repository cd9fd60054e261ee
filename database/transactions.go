package database

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    "scholarly-checkout-api/models"
)

type Transaction struct {
    tx *sql.Tx
}

func (t *Transaction) Commit() error {
    return t.tx.Commit()
}

func (t *Transaction) Rollback() error {
    return t.tx.Rollback()
}

// SaveUser inserts the account created at checkout. The passphrase arrives
// already hashed.
func (t *Transaction) SaveUser(user *models.OrderUser, phone, hashedPassword string) error {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    query := `
        INSERT INTO users (
            id, first_name, last_name, email, phone_number,
            institution_name, passphrase, email_confirmed, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, 1, NOW())
    `

    _, err := t.tx.ExecContext(ctx, query,
        user.ID, user.FirstName, user.LastName, user.Email, phone,
        user.InstitutionName, hashedPassword)
    if err != nil {
        return fmt.Errorf("failed to save user: %v", err)
    }
    return nil
}

// SaveSubscription inserts the subscription row for the order, including
// the gateway's recurring-billing reference.
func (t *Transaction) SaveSubscription(userID, gatewaySubID string, sub *models.OrderSubscription) error {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    query := `
        INSERT INTO subscriptions (
            id, user_id, plan_id, billing_cycle, total_amount,
            status, gateway_subscription_id, renew_date, created_at
        ) VALUES (?, ?, ?, ?, ?, 'active', ?, ?, NOW())
    `

    _, err := t.tx.ExecContext(ctx, query,
        sub.ID, userID, sub.PlanID, string(sub.BillingCycle), sub.TotalAmount, gatewaySubID, sub.RenewDate)
    if err != nil {
        return fmt.Errorf("failed to save subscription: %v", err)
    }
    return nil
}

// SaveOrder records the order itself: totals, promo, add-on selection and
// the gateway transaction reference.
func (t *Transaction) SaveOrder(orderID, userID, subscriptionID, transactionID string,
    order *models.OrderRequest, addOnsJSON string) error {

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    query := `
        INSERT INTO orders (
            id, user_id, subscription_id, transaction_id, plan_id,
            billing_cycle, total_amount, promo_code, discount_percent,
            add_ons_json, payment_method, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `

    var promoCode sql.NullString
    if order.PromoCode != "" {
        promoCode = sql.NullString{String: order.PromoCode, Valid: true}
    }

    _, err := t.tx.ExecContext(ctx, query,
        orderID, userID, subscriptionID, transactionID, order.PlanID,
        string(order.BillingCycle), order.TotalAmount, promoCode, order.Discount,
        addOnsJSON, order.PaymentMethod)
    if err != nil {
        return fmt.Errorf("failed to save order: %v", err)
    }
    return nil
}

// SavePaymentMethod stores the masked card only. The PAN and CVV never
// reach the database.
func (t *Transaction) SavePaymentMethod(userID, maskedCard, expiry string) error {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    query := `
        INSERT INTO billing_infos (user_id, card, expiry, created_at)
        VALUES (?, ?, ?, NOW())
    `

    _, err := t.tx.ExecContext(ctx, query, userID, maskedCard, expiry)
    if err != nil {
        return fmt.Errorf("failed to save payment method: %v", err)
    }
    return nil
}

// SaveBillingAddress stores the step-4 address for the user.
func (t *Transaction) SaveBillingAddress(userID string, addr *models.BillingAddress) error {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    country := addr.Country
    if country == "other" {
        country = addr.CustomCountry
    }

    var address2 sql.NullString
    if addr.Address2 != "" {
        address2 = sql.NullString{String: addr.Address2, Valid: true}
    }

    query := `
        INSERT INTO billing_addresses (
            user_id, address, address2, city, state, zip_code, country, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
    `

    _, err := t.tx.ExecContext(ctx, query,
        userID, addr.Address, address2, addr.City, addr.State, addr.ZipCode, country)
    if err != nil {
        return fmt.Errorf("failed to save billing address: %v", err)
    }
    return nil
}
