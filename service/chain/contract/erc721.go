package contract

import (
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	baseabi "github.com/x-xyz/auctionhouse/base/abi"
	bCtx "github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/service/chain"
)

// Erc721 is the asset registry backed by ERC-721 contracts. The house
// account must be an approved operator of every lister.
type Erc721 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

var _ auction.AssetRegistry = (*Erc721)(nil)

func NewErc721(chainService chain.Client) *Erc721 {
	return &Erc721{
		abi:          baseabi.ERC721ABI,
		chainService: chainService,
	}
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return "", domain.ErrNotFound
	}
	unpacked, err := e.chainService.Call(ctx, common.HexToAddress(string(contract)), e.abi, "ownerOf", id)
	if isRevert(err) {
		// nonexistent tokens revert
		return "", domain.ErrNotFound
	} else if err != nil {
		return "", err
	}
	return domain.Address(unpacked[0].(common.Address).Hex()).ToLower(), nil
}

func (e *Erc721) IsApprovedForAll(ctx bCtx.Ctx, contract, owner, operator domain.Address) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, common.HexToAddress(string(contract)), e.abi, "isApprovedForAll",
		common.HexToAddress(string(owner)), common.HexToAddress(string(operator)))
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

// TransferOwnership moves the token with the house's key, from must have approved the house unless the house holds it
func (e *Erc721) TransferOwnership(ctx bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, from, to domain.Address) error {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return domain.ErrNotFound
	}
	if !from.Equals(e.chainService.Sender()) {
		approved, err := e.IsApprovedForAll(ctx, contract, from, e.chainService.Sender())
		if err != nil {
			return err
		} else if !approved {
			return domain.ErrNotOperator
		}
	}

	receipt, err := e.chainService.Transact(ctx, common.HexToAddress(string(contract)), e.abi, "safeTransferFrom",
		common.HexToAddress(string(from)), common.HexToAddress(string(to)), id)
	if err != nil {
		return xerrors.Errorf("safeTransferFrom %s #%s: %w", contract, tokenId, err)
	}
	ctx.WithFields(log.Fields{
		"contract": contract,
		"tokenId":  tokenId,
		"from":     from,
		"to":       to,
		"tx":       receipt.TxHash.Hex(),
	}).Info("asset transferred")
	return nil
}

func isRevert(err error) bool {
	return err != nil && strings.Contains(err.Error(), "execution reverted")
}
