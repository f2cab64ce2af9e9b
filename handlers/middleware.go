package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"lawscape-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	APIKeyHeader    = "X-API-Key"
	apiKeyScheme    = "lsk_"
	requestIDHeader = "X-Request-ID"
	apiKeyCtxKey    = "api_key"
)

var ErrMalformedAPIKey = errors.New("malformed api key")

// APIKeyLookup finds stored keys by their public prefix
type APIKeyLookup interface {
	GetByPrefix(ctx context.Context, prefix string) (*models.APIKey, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

// RequestLogger logs one line per request with a request id
func RequestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		} else if status >= http.StatusBadRequest {
			event = logger.Warn()
		}
		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// RequireAPIKey rejects requests without a valid, unrevoked API key
func RequireAPIKey(keys APIKeyLookup, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		prefix, secret, err := ParseAPIKey(c.GetHeader(APIKeyHeader))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or malformed API key")
			c.Abort()
			return
		}

		key, err := keys.GetByPrefix(c.Request.Context(), prefix)
		if err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				logger.Error().Err(err).Msg("failed to look up api key")
				respondError(c, http.StatusInternalServerError, "AUTH_FAILED", "failed to verify API key")
				c.Abort()
				return
			}
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid API key")
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(secret)); err != nil {
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid API key")
			c.Abort()
			return
		}

		if err := keys.Touch(c.Request.Context(), key.ID); err != nil {
			logger.Warn().Err(err).Str("key", key.Prefix).Msg("failed to update api key last use")
		}

		c.Set(apiKeyCtxKey, key)
		c.Next()
	}
}

// ParseAPIKey splits a key of the form lsk_<prefix>.<secret>
func ParseAPIKey(raw string) (prefix, secret string, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(raw), apiKeyScheme)
	if !ok {
		return "", "", ErrMalformedAPIKey
	}
	prefix, secret, ok = strings.Cut(rest, ".")
	if !ok || prefix == "" || secret == "" {
		return "", "", ErrMalformedAPIKey
	}
	return prefix, secret, nil
}

// GeneratedAPIKey is a freshly issued key. Plaintext is shown once and never stored.
type GeneratedAPIKey struct {
	Plaintext string
	Prefix    string
	Hash      string
}

// GenerateAPIKey issues a new random key hashed with bcrypt at cost
func GenerateAPIKey(cost int) (*GeneratedAPIKey, error) {
	prefixBytes := make([]byte, 4)
	secretBytes := make([]byte, 24)
	if _, err := rand.Read(prefixBytes); err != nil {
		return nil, err
	}
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, err
	}

	prefix := hex.EncodeToString(prefixBytes)
	secret := hex.EncodeToString(secretBytes)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, err
	}

	return &GeneratedAPIKey{
		Plaintext: apiKeyScheme + prefix + "." + secret,
		Prefix:    prefix,
		Hash:      string(hash),
	}, nil
}
