package main

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/nkroberts01/virtual-interviews/internal/auth"
	"github.com/nkroberts01/virtual-interviews/pkg/response"
)

// AuthMiddleware is the authorization gate for protected routes. It verifies
// the bearer token and then checks the session store, so a session deleted by
// sign-out stops working on the very next request. Unauthenticated requests
// get a login redirect carrying the originally requested path.
func (app *application) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyClaimsFromAuthHeader(c, app.Handler.TokenMaker)
		if err != nil {
			abortToLogin(c, err.Error())
			return
		}

		userID, err := app.Handler.Sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil || userID != claims.UserID {
			abortToLogin(c, "session expired")
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

func abortToLogin(c *gin.Context, message string) {
	redirect := "/login?next=" + url.QueryEscape(c.Request.URL.Path)
	response.Unauthorized(c, message, redirect)
	c.Abort()
}

func verifyClaimsFromAuthHeader(c *gin.Context, tokenMaker *auth.JWTMaker) (*auth.UserClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header is missing")
	}

	fields := strings.Fields(authHeader)
	if len(fields) != 2 || fields[0] != "Bearer" {
		return nil, fmt.Errorf("invalid authorization header")
	}

	claims, err := tokenMaker.VerifyToken(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return claims, nil
}

// RateLimitMiddleware applies a per-client token bucket keyed by remote IP.
func (app *application) RateLimitMiddleware() gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	cfg := app.Config.Limiter
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		ip := c.ClientIP()
		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(429, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
