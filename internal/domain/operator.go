package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleOperator pode disparar e acompanhar os jobs de sincronização
const RoleOperator = "operator"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type Claims struct {
	OperatorEmail string `json:"email"`
	Role          string `json:"role"`
	jwt.RegisteredClaims
}
