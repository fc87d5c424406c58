package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"bus_logistics/internal/models"
)

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

// GenerateToken issues a signed token carrying the user id and the
// user's role names.
func GenerateToken(userID uint, roles []models.RoleName) (string, error) {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	claims := jwt.MapClaims{
		"user_id": userID,
		"roles":   names,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// authenticate validates the bearer token and stores the user id and
// role names on the context. It aborts with 401 and returns false on
// any failure; it never advances the handler chain itself.
func authenticate(c *gin.Context) ([]string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return nil, false
	}

	roles := roleNamesFromClaim(claims["roles"])
	c.Set("user_id", claims["user_id"])
	c.Set("roles", roles)
	return roles, true
}

// RequireAuth ensures a valid JWT is present
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireAuthWithRole ensures the JWT is valid and the role set
// contains the required capability. The role check runs before the
// handler chain advances, so a missing role never reaches the handler.
func RequireAuthWithRole(required models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, ok := authenticate(c)
		if !ok {
			return
		}
		for _, r := range roles {
			if r == string(required) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// roleNamesFromClaim flattens the JSON-decoded roles claim, which
// arrives as []interface{}.
func roleNamesFromClaim(claim any) []string {
	raw, ok := claim.([]interface{})
	if !ok {
		return nil
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			names = append(names, s)
		}
	}
	return names
}
