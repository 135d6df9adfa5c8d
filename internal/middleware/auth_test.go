package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"classifieds/internal/auth"
	"classifieds/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired(t *testing.T) {
	secret := "test-secret-key-12345678901234567890123456789012"
	manager := auth.NewManager(secret, time.Hour)

	app := fiber.New()
	app.Get("/test", AuthRequired(manager), func(c *fiber.Ctx) error {
		userID, ok := c.Locals(LocalUserID).(uint)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		identity, ok := IdentityFrom(c.UserContext())
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.JSON(fiber.Map{"userID": userID, "email": identity.Email})
	})

	valid, err := manager.Issue(auth.Identity{UserID: 123, Email: "ana@example.com"})
	require.NoError(t, err)

	expired := func() string {
		claims := auth.Claims{
			Email: "ana@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "123",
				Issuer:    auth.Issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}()

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Happy Path",
			authHeader:     "Bearer " + valid,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Lowercase Scheme",
			authHeader:     "bearer " + valid,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Missing token",
		},
		{
			name:           "Invalid Format",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:           "Bearer Without Token",
			authHeader:     "Bearer",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:           "Malformed Token",
			authHeader:     "Bearer malformed.token.here",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + expired,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			if tt.expectedStatus == http.StatusOK {
				var got struct {
					UserID uint   `json:"userID"`
					Email  string `json:"email"`
				}
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, uint(123), got.UserID)
				assert.Equal(t, "ana@example.com", got.Email)
				return
			}

			var errResp models.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &errResp))
			assert.Equal(t, tt.expectedError, errResp.Error)
			assert.Equal(t, models.CodeUnauthorized, errResp.Code)
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("  BEARER   abc "))
	assert.Equal(t, "", bearerToken("Token abc"))
	assert.Equal(t, "", bearerToken("abc"))
}
