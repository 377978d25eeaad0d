package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"business-directory-service/internal/model"
)

const identityKey = "identity"

// Authenticate verifies the Authorization bearer token against secret and
// attaches the decoded Identity to the context. A missing header is
// Unauthorized; a token that fails verification is Forbidden.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			if token.Method.Alg() != "HS256" {
				return nil, fmt.Errorf("only HS256 is allowed")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		identity, err := identityFromClaims(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// identityFromClaims extracts {id|userId, role} from the token payload.
func identityFromClaims(claims jwt.MapClaims) (model.Identity, error) {
	raw, ok := claims["id"]
	if !ok {
		raw, ok = claims["userId"]
	}
	if !ok {
		return model.Identity{}, fmt.Errorf("missing id claim")
	}
	id, ok := raw.(float64)
	if !ok {
		return model.Identity{}, fmt.Errorf("id claim is not a number")
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return model.Identity{}, fmt.Errorf("missing role claim")
	}
	role := model.Role(roleStr)
	if !role.Valid() {
		return model.Identity{}, fmt.Errorf("unknown role %q", roleStr)
	}

	return model.Identity{UserID: int64(id), Role: role}, nil
}

// IdentityFrom returns the identity claim attached by Authenticate.
func IdentityFrom(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}
