package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	callerContextKey = "caller"
	eventContextKey  = "eventID"
)

// Claims is the shift token issued to event staff. Zone bindings are not
// in the token; they are resolved from the assignments table per request
// so a reassignment takes effect immediately.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	EventID  uuid.UUID `json:"event_id"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs a shift token. Used by the identity service and by
// integration tests.
func GenerateToken(secret string, userID, tenantID, eventID kernel.UUID, role staffing.Role, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:   userID.Bytes(),
		TenantID: tenantID.Bytes(),
		EventID:  eventID.Bytes(),
		Role:     role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a shift token.
func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Authenticate validates the bearer token and resolves the scoped caller
// for the request. The caller and the shift's event ID land in the echo
// context for handlers to pick up.
func Authenticate(secret string, resolver ports.CallerResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing authorization header",
				})
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid authorization format",
				})
			}

			claims, err := ValidateToken(secret, parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token",
				})
			}

			userID, err := kernel.UUIDFromBytes(claims.UserID[:])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token subject",
				})
			}
			tenantID, err := kernel.UUIDFromBytes(claims.TenantID[:])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token tenant",
				})
			}
			eventID, err := kernel.UUIDFromBytes(claims.EventID[:])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token event",
				})
			}

			caller, err := resolver.Resolve(
				c.Request().Context(), userID, tenantID, eventID, staffing.Role(claims.Role))
			if err != nil {
				return writeError(c, err)
			}

			c.Set(callerContextKey, caller)
			c.Set(eventContextKey, eventID)
			return next(c)
		}
	}
}

func callerFrom(c echo.Context) (staffing.Caller, bool) {
	caller, ok := c.Get(callerContextKey).(staffing.Caller)
	return caller, ok
}

func eventIDFrom(c echo.Context) (kernel.UUID, bool) {
	eventID, ok := c.Get(eventContextKey).(kernel.UUID)
	return eventID, ok
}
