package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openclaims/riskprice/internal/pkg/errcode"
	"github.com/openclaims/riskprice/internal/pkg/jwt"
	"github.com/openclaims/riskprice/internal/pkg/password"
	"github.com/openclaims/riskprice/internal/pkg/response"
)

type AuthHandler struct {
	secret       []byte
	ttl          time.Duration
	passwordHash string
}

func NewAuthHandler(secret []byte, ttl time.Duration, passwordHash string) *AuthHandler {
	return &AuthHandler{secret: secret, ttl: ttl, passwordHash: passwordHash}
}

type tokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Token exchanges the operator credential for a bearer token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "username and password are required")
		return
	}
	if h.passwordHash == "" || password.Compare(h.passwordHash, req.Password) != nil {
		response.Error(c, http.StatusUnauthorized, errcode.ErrUnauthorized, "invalid credentials")
		return
	}
	token, err := jwt.GenerateToken(req.Username, h.secret, h.ttl)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token, "expires_in": int64(h.ttl.Seconds())})
}
