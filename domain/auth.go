package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/auctionhouse/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// Nonce issues a one-time nonce the address has to sign
	Nonce(ctx ctx.Ctx, address Address) (string, error)
	// SignToken checks the signature over the signing message and returns an access token
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address Address, err error)
}
