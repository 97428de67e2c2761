package usecase

import (
	"math/big"
	"sync"

	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/ledger"
)

type bank struct {
	mu       sync.RWMutex
	house    domain.Address
	balances map[domain.Address]*big.Int
}

// NewBank returns native balances with house as the custody account
func NewBank(house domain.Address) ledger.Bank {
	return &bank{
		house:    house.ToLower(),
		balances: map[domain.Address]*big.Int{},
	}
}

func (b *bank) balance(a domain.Address) *big.Int {
	bal, ok := b.balances[a.ToLower()]
	if !ok {
		bal = new(big.Int)
		b.balances[a.ToLower()] = bal
	}
	return bal
}

func (b *bank) move(from, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	src := b.balance(from)
	if src.Cmp(amount) < 0 {
		return xerrors.Errorf("%s has %s, needs %s: %w", from, src, amount, domain.ErrInsufficientFunds)
	}
	src.Sub(src, amount)
	dst := b.balance(to)
	dst.Add(dst, amount)
	return nil
}

func (b *bank) Deposit(c ctx.Ctx, from domain.Address, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.move(from, b.house, amount); err != nil {
		return err
	}
	c.WithFields(log.Fields{"from": from, "amount": amount.String()}).Debug("deposited")
	return nil
}

func (b *bank) Pay(c ctx.Ctx, to domain.Address, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.move(b.house, to, amount); err != nil {
		return err
	}
	c.WithFields(log.Fields{"to": to, "amount": amount.String()}).Debug("paid")
	return nil
}

func (b *bank) Credit(c ctx.Ctx, account domain.Address, amount *big.Int) error {
	if account.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidNumberFormat
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bal := b.balance(account)
	bal.Add(bal, amount)
	return nil
}

// RestoreHeld tops the house balance up to held, it never takes funds away
func (b *bank) RestoreHeld(c ctx.Ctx, held *big.Int) error {
	if held == nil || held.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	bal := b.balance(b.house)
	if bal.Cmp(held) >= 0 {
		return nil
	}
	missing := new(big.Int).Sub(held, bal)
	bal.Set(held)
	c.WithFields(log.Fields{"held": held.String(), "restored": missing.String()}).Info("custody restored")
	return nil
}

func (b *bank) BalanceOf(c ctx.Ctx, account domain.Address) *big.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if bal, ok := b.balances[account.ToLower()]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}
