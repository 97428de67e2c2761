package ledger

import (
	"math/big"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

// Registry is an in-process ERC-721 style ownership record
type Registry interface {
	auction.AssetRegistry
	auction.AssetRestorer

	Mint(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, to domain.Address) error
	SetApprovalForAll(c ctx.Ctx, owner, operator domain.Address, approved bool) error
	IsApprovedForAll(c ctx.Ctx, owner, operator domain.Address) bool
}

// Bank keeps native balances, the house's own balance is its custody
type Bank interface {
	auction.Custody
	auction.CustodyRestorer

	// Credit mints amount to the account, it backs the faucet
	Credit(c ctx.Ctx, account domain.Address, amount *big.Int) error
	BalanceOf(c ctx.Ctx, account domain.Address) *big.Int
}
