package verification

import (
    "context"
    "fmt"
    "log"
    "time"

    "github.com/go-redis/redis/v8"

    "scholarly-checkout-api/queue"
    "scholarly-checkout-api/utils"
)

// Service issues and checks email verification codes. Codes live in redis
// under the checkout session ID with the code TTL, so an abandoned session
// cleans up by itself.
type Service struct {
    client *redis.Client
    queue  *queue.Queue
}

func NewService(client *redis.Client, q *queue.Queue) *Service {
    return &Service{client: client, queue: q}
}

func codeKey(sessionID string) string {
    return "verification:code:" + sessionID
}

// Issue generates a fresh code, stores it with the absolute expiry and
// queues the delivery email. Any previously stored code is replaced.
func (s *Service) Issue(ctx context.Context, sessionID, email string) error {
    code := utils.GenerateVerificationCode()

    if err := s.client.Set(ctx, codeKey(sessionID), code, CodeTTL).Err(); err != nil {
        return fmt.Errorf("failed to store verification code: %v", err)
    }

    err := s.queue.Enqueue(ctx, queue.JobTypeSendVerificationEmail, map[string]interface{}{
        "email": email,
        "code":  code,
    })
    if err != nil {
        // The code is stored; delivery can be retried via resend.
        log.Printf("Failed to enqueue verification email for session %s: %v", sessionID, err)
        return fmt.Errorf("failed to queue verification email: %v", err)
    }

    return nil
}

// Check compares the submitted code with the stored one. A match consumes
// the stored code so it cannot be replayed.
func (s *Service) Check(ctx context.Context, sessionID, code string) (bool, error) {
    stored, err := s.client.Get(ctx, codeKey(sessionID)).Result()
    if err == redis.Nil {
        return false, nil
    }
    if err != nil {
        return false, fmt.Errorf("failed to read verification code: %v", err)
    }

    if stored != code {
        return false, nil
    }

    if err := s.client.Del(ctx, codeKey(sessionID)).Err(); err != nil {
        log.Printf("Warning: failed to delete consumed verification code for session %s: %v", sessionID, err)
    }
    return true, nil
}

// Clear drops any stored code, used when a resend replaces the prior code
// explicitly before the new one is written.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
    if err := s.client.Del(ctx, codeKey(sessionID)).Err(); err != nil {
        return fmt.Errorf("failed to clear verification code: %v", err)
    }
    return nil
}

// WithTimeout bounds a verification call the way the client-side contract
// does: 10 seconds per verification or promo request.
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(ctx, 10*time.Second)
}
