package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequirePasscode gates mutating routes behind a shared passcode, supplied
// either as an X-Kiosk-Code header or a `code` query parameter (the QR-code
// flow can only send query params). An empty configured passcode disables
// the gate.
func RequirePasscode(passcode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if passcode == "" {
			c.Next()
			return
		}

		supplied := c.GetHeader("X-Kiosk-Code")
		if supplied == "" {
			supplied = c.Query("code")
		}

		if subtle.ConstantTimeCompare([]byte(supplied), []byte(passcode)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "invalid passcode",
			})
			return
		}

		c.Next()
	}
}
