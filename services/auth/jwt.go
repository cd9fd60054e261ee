package auth

import (
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"

    "scholarly-checkout-api/database"
    "scholarly-checkout-api/models"
    "scholarly-checkout-api/utils"
)

const (
    AccessTokenDuration  = 15 * time.Minute
    RefreshTokenDuration = 7 * 24 * time.Hour
)

var (
    ErrInvalidCredentials = errors.New("invalid email or password")
    ErrTokenExpired       = errors.New("token expired")
    ErrInvalidToken       = errors.New("invalid token")
)

type JWTService struct {
    secretKey []byte
    issuer    string
    db        *database.Connection
}

type Claims struct {
    UserID    string `json:"user_id"`
    Email     string `json:"email"`
    TokenType string `json:"token_type"` // "access" or "refresh"
    jwt.RegisteredClaims
}

func NewJWTService(secretKey, issuer string, db *database.Connection) *JWTService {
    return &JWTService{
        secretKey: []byte(secretKey),
        issuer:    issuer,
        db:        db,
    }
}

// Authenticate checks credentials against the users table and issues an
// access/refresh token pair.
func (j *JWTService) Authenticate(email, password string) (*models.AuthResponse, error) {
    user, storedHash, err := j.db.GetUserByEmail(email)
    if err == sql.ErrNoRows {
        return nil, ErrInvalidCredentials
    }
    if err != nil {
        return nil, fmt.Errorf("failed to look up user: %v", err)
    }

    if utils.HashPassword(password) != storedHash {
        return nil, ErrInvalidCredentials
    }

    accessToken, expiresAt, err := j.generateToken(user, "access", AccessTokenDuration)
    if err != nil {
        return nil, err
    }
    refreshToken, _, err := j.generateToken(user, "refresh", RefreshTokenDuration)
    if err != nil {
        return nil, err
    }

    return &models.AuthResponse{
        Token:        accessToken,
        RefreshToken: refreshToken,
        ExpiresAt:    expiresAt,
        User:         *user,
    }, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (j *JWTService) Refresh(refreshToken string) (*models.AuthResponse, error) {
    claims, err := j.ValidateToken(refreshToken)
    if err != nil {
        return nil, err
    }
    if claims.TokenType != "refresh" {
        return nil, ErrInvalidToken
    }

    user, _, err := j.db.GetUserByEmail(claims.Email)
    if err != nil {
        return nil, ErrInvalidCredentials
    }

    accessToken, expiresAt, err := j.generateToken(user, "access", AccessTokenDuration)
    if err != nil {
        return nil, err
    }

    return &models.AuthResponse{
        Token:        accessToken,
        RefreshToken: refreshToken,
        ExpiresAt:    expiresAt,
        User:         *user,
    }, nil
}

func (j *JWTService) generateToken(user *models.OrderUser, tokenType string, duration time.Duration) (string, time.Time, error) {
    expiresAt := time.Now().Add(duration)

    claims := Claims{
        UserID:    user.ID,
        Email:     user.Email,
        TokenType: tokenType,
        RegisteredClaims: jwt.RegisteredClaims{
            Issuer:    j.issuer,
            Subject:   user.ID,
            ExpiresAt: jwt.NewNumericDate(expiresAt),
            IssuedAt:  jwt.NewNumericDate(time.Now()),
        },
    }

    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := token.SignedString(j.secretKey)
    if err != nil {
        return "", time.Time{}, fmt.Errorf("failed to sign token: %v", err)
    }
    return signed, expiresAt, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (j *JWTService) ValidateToken(tokenString string) (*Claims, error) {
    token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
        if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
        }
        return j.secretKey, nil
    })
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return nil, ErrTokenExpired
        }
        return nil, ErrInvalidToken
    }

    claims, ok := token.Claims.(*Claims)
    if !ok || !token.Valid {
        return nil, ErrInvalidToken
    }
    return claims, nil
}
