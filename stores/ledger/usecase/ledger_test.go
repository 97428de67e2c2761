package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
)

const (
	house   = domain.Address("0x00000000000000000000000000000000000000aa")
	alice   = domain.Address("0x00000000000000000000000000000000000000A1")
	bob     = domain.Address("0x00000000000000000000000000000000000000b0")
	erc721  = domain.Address("0x0000000000000000000000000000000000000721")
	tokenId = domain.TokenId("1")
)

func TestRegistry(t *testing.T) {
	c := ctx.Background()

	t.Run("mint once", func(t *testing.T) {
		req := require.New(t)
		r := NewRegistry(house)
		req.NoError(r.Mint(c, erc721, tokenId, alice))
		req.ErrorIs(r.Mint(c, erc721, tokenId, bob), domain.ErrConflict)

		owner, err := r.OwnerOf(c, erc721, tokenId)
		req.NoError(err)
		req.True(owner.Equals(alice))

		_, err = r.OwnerOf(c, erc721, "2")
		req.ErrorIs(err, domain.ErrNotFound)
	})

	t.Run("house needs approval", func(t *testing.T) {
		req := require.New(t)
		r := NewRegistry(house)
		req.NoError(r.Mint(c, erc721, tokenId, alice))

		req.ErrorIs(r.TransferOwnership(c, erc721, tokenId, alice, house), domain.ErrNotOperator)
		req.NoError(r.SetApprovalForAll(c, alice, house, true))
		req.True(r.IsApprovedForAll(c, alice, house))
		req.NoError(r.TransferOwnership(c, erc721, tokenId, alice, house))

		// house moves its own tokens freely
		req.NoError(r.TransferOwnership(c, erc721, tokenId, house, bob))
		owner, err := r.OwnerOf(c, erc721, tokenId)
		req.NoError(err)
		req.True(owner.Equals(bob))
	})

	t.Run("from must own", func(t *testing.T) {
		req := require.New(t)
		r := NewRegistry(house)
		req.NoError(r.Mint(c, erc721, tokenId, alice))
		req.NoError(r.SetApprovalForAll(c, bob, house, true))
		req.ErrorIs(r.TransferOwnership(c, erc721, tokenId, bob, house), domain.ErrNotTokenOwner)
	})
}

func TestBank(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	b := NewBank(house)

	req.ErrorIs(b.Deposit(c, alice, big.NewInt(1)), domain.ErrInsufficientFunds)
	req.NoError(b.Credit(c, alice, big.NewInt(100)))
	req.NoError(b.Deposit(c, alice, big.NewInt(60)))
	req.Equal("40", b.BalanceOf(c, alice).String())
	req.Equal("60", b.BalanceOf(c, house).String())

	req.ErrorIs(b.Pay(c, bob, big.NewInt(61)), domain.ErrInsufficientFunds)
	req.NoError(b.Pay(c, bob, big.NewInt(60)))
	req.Equal("60", b.BalanceOf(c, bob).String())
	req.Equal(0, b.BalanceOf(c, house).Sign())

	req.ErrorIs(b.Credit(c, alice, big.NewInt(0)), domain.ErrInvalidNumberFormat)
}

func TestRestoreOwner(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	r := NewRegistry(house)

	req.NoError(r.RestoreOwner(c, erc721, tokenId, house))
	req.NoError(r.Mint(c, erc721, "2", alice))
	req.NoError(r.RestoreOwner(c, erc721, "2", bob))
	req.ErrorIs(r.RestoreOwner(c, erc721, "3", ""), domain.ErrInvalidAddress)

	owner, err := r.OwnerOf(c, erc721, tokenId)
	req.NoError(err)
	req.True(owner.Equals(house))

	// known tokens keep their owner
	owner, err = r.OwnerOf(c, erc721, "2")
	req.NoError(err)
	req.True(owner.Equals(alice))

	// restored custody can be paid out like any other
	req.NoError(r.TransferOwnership(c, erc721, tokenId, house, bob))
}

func TestRestoreHeld(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	b := NewBank(house)

	req.NoError(b.RestoreHeld(c, big.NewInt(50)))
	req.Equal("50", b.BalanceOf(c, house).String())

	// already backed, nothing changes
	req.NoError(b.RestoreHeld(c, big.NewInt(20)))
	req.Equal("50", b.BalanceOf(c, house).String())

	req.ErrorIs(b.RestoreHeld(c, big.NewInt(-1)), domain.ErrInvalidNumberFormat)
	req.NoError(b.Pay(c, bob, big.NewInt(50)))
	req.Equal("50", b.BalanceOf(c, bob).String())
}
