package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/service/cache"
	"github.com/x-xyz/auctionhouse/service/cache/provider/primitive"
	"github.com/x-xyz/auctionhouse/stores/auth/usecase"
)

const msgTemplate = "Sign in to the auction house, nonce: %s"

func newAuth() domain.AuthUsecase {
	return usecase.New(&usecase.AuthUseCaseCfg{
		JwtSecret:    "jwt-secret",
		SignatureMsg: msgTemplate,
		NonceCache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "auth-test",
			Cache: primitive.NewPrimitive("auth-test", 1),
		}),
	})
}

func TestSignAndParseToken(t *testing.T) {
	c := ctx.Background()
	u := newAuth()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	sign := func(nonce string) string {
		sig, err := crypto.Sign(accounts.TextHash([]byte(fmt.Sprintf(msgTemplate, nonce))), key)
		require.NoError(t, err)
		return hexutil.Encode(sig)
	}

	nonce, err := u.Nonce(c, address)
	require.NoError(t, err)
	require.NotEmpty(t, nonce)

	sig := sign(nonce)
	tkn, err := u.SignToken(c, address, sig)
	require.NoError(t, err)
	require.NotEmpty(t, tkn)

	ads, err := u.ParseToken(c, tkn)
	require.NoError(t, err)
	require.Equal(t, address.ToLower(), ads)

	t.Run("nonce is single use", func(t *testing.T) {
		_, err := u.SignToken(c, address, sig)
		require.ErrorIs(t, err, domain.ErrInvalidNonce)
	})

	t.Run("signature by another key", func(t *testing.T) {
		nonce, err := u.Nonce(c, address)
		require.NoError(t, err)
		other, err := crypto.GenerateKey()
		require.NoError(t, err)
		sig, err := crypto.Sign(accounts.TextHash([]byte(fmt.Sprintf(msgTemplate, nonce))), other)
		require.NoError(t, err)
		_, err = u.SignToken(c, address, hexutil.Encode(sig))
		require.ErrorIs(t, err, domain.ErrInvalidSignature)
	})

	t.Run("token from another secret", func(t *testing.T) {
		other := usecase.New(&usecase.AuthUseCaseCfg{JwtSecret: "other", SignatureMsg: msgTemplate, NonceCache: nil})
		_, err := other.ParseToken(c, tkn)
		require.Error(t, err)
	})
}

func TestNonceRejectsBadAddress(t *testing.T) {
	_, err := newAuth().Nonce(ctx.Background(), "0x1234")
	require.ErrorIs(t, err, domain.ErrInvalidAddress)
}
