package usecase

import (
	"sync"

	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/ledger"
)

type tokenKey struct {
	contract domain.Address
	tokenId  domain.TokenId
}

type registry struct {
	mu        sync.RWMutex
	house     domain.Address
	owners    map[tokenKey]domain.Address
	operators map[domain.Address]map[domain.Address]bool
}

// NewRegistry returns an ERC-721 style registry. Moving a token out of an
// account other than house needs the account to have approved house as operator.
func NewRegistry(house domain.Address) ledger.Registry {
	return &registry{
		house:     house.ToLower(),
		owners:    map[tokenKey]domain.Address{},
		operators: map[domain.Address]map[domain.Address]bool{},
	}
}

func key(contract domain.Address, tokenId domain.TokenId) tokenKey {
	return tokenKey{contract: contract.ToLower(), tokenId: tokenId}
}

func (r *registry) Mint(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, to domain.Address) error {
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(contract, tokenId)
	if _, ok := r.owners[k]; ok {
		return xerrors.Errorf("token %s/%s minted: %w", contract, tokenId, domain.ErrConflict)
	}
	r.owners[k] = to.ToLower()
	return nil
}

func (r *registry) OwnerOf(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[key(contract, tokenId)]
	if !ok {
		return "", domain.ErrNotFound
	}
	return owner, nil
}

func (r *registry) TransferOwnership(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, from, to domain.Address) error {
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(contract, tokenId)
	owner, ok := r.owners[k]
	if !ok {
		return domain.ErrNotFound
	}
	if !owner.Equals(from) {
		return domain.ErrNotTokenOwner
	}
	if !owner.Equals(r.house) && !r.operators[owner][r.house] {
		return domain.ErrNotOperator
	}
	r.owners[k] = to.ToLower()
	c.WithFields(log.Fields{
		"contract": contract,
		"tokenId":  tokenId,
		"from":     from,
		"to":       to,
	}).Debug("token transferred")
	return nil
}

// RestoreOwner records owner for a token minted before a restart. Tokens the
// registry already knows keep their owner.
func (r *registry) RestoreOwner(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address) error {
	if owner.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(contract, tokenId)
	if _, ok := r.owners[k]; ok {
		return nil
	}
	r.owners[k] = owner.ToLower()
	c.WithFields(log.Fields{
		"contract": contract,
		"tokenId":  tokenId,
		"owner":    owner,
	}).Debug("token restored")
	return nil
}

func (r *registry) SetApprovalForAll(c ctx.Ctx, owner, operator domain.Address, approved bool) error {
	if owner.IsEmpty() || operator.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ops, ok := r.operators[owner.ToLower()]
	if !ok {
		ops = map[domain.Address]bool{}
		r.operators[owner.ToLower()] = ops
	}
	ops[operator.ToLower()] = approved
	return nil
}

func (r *registry) IsApprovedForAll(c ctx.Ctx, owner, operator domain.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.operators[owner.ToLower()][operator.ToLower()]
}
