package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/ethereum"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/keys"
	"github.com/x-xyz/auctionhouse/service/cache"
)

const (
	tokenTtl = 24 * time.Hour
)

type AuthUseCaseCfg struct {
	JwtSecret string
	// SignatureMsg is a fmt template with one %s for the nonce
	SignatureMsg string
	// NonceCache must be shared by every instance serving /auth, a nonce is taken exactly once
	NonceCache cache.Service
	Now        func() time.Time
}

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	nonces       cache.Service
	now          func() time.Time
}

func New(cfg *AuthUseCaseCfg) domain.AuthUsecase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		jwtSecret:    []byte(cfg.JwtSecret),
		signatureMsg: cfg.SignatureMsg,
		nonces:       cfg.NonceCache,
		now:          now,
	}
}

func nonceKey(address domain.Address) string {
	return keys.RedisKey(keys.PfxNonce, address.ToLowerStr())
}

func (im *impl) Nonce(c ctx.Ctx, address domain.Address) (string, error) {
	if _, err := ethereum.ParseAddress(string(address)); err != nil {
		return "", err
	}
	nonce := uuid.NewString()
	if err := im.nonces.Set(c, nonceKey(address), nonce); err != nil {
		c.WithField("err", err).Error("nonces.Set failed")
		return "", err
	}
	return nonce, nil
}

func (im *impl) makeMessageWithNonce(nonce string) []byte {
	return []byte(fmt.Sprintf(im.signatureMsg, nonce))
}

func (im *impl) SignToken(c ctx.Ctx, address domain.Address, signature string) (string, error) {
	c = ctx.WithValue(c, "address", address)

	addr, err := ethereum.ParseAddress(string(address))
	if err != nil {
		return "", err
	}

	// the nonce is gone after this whatever the outcome, a failed attempt needs a new one
	var nonce string
	if err := im.nonces.Take(c, nonceKey(addr), &nonce); err == cache.ErrNotFound {
		return "", domain.ErrInvalidNonce
	} else if err != nil {
		c.WithField("err", err).Error("nonces.Take failed")
		return "", err
	}

	if ok, err := ethereum.ValidateMsgSignature(im.makeMessageWithNonce(nonce), signature, string(addr)); err != nil {
		c.WithField("err", err).Warn("ValidateMsgSignature failed")
		return "", err
	} else if !ok {
		return "", domain.ErrInvalidSignature
	}

	claims := domain.JwtCustomClaims{
		Address: string(addr),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  im.now().Unix(),
			ExpiresAt: im.now().Add(tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		c.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(c ctx.Ctx, str string) (domain.Address, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return domain.Address(claims.Address), nil
	}
	return "", domain.ErrUnauthorized
}
