package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

var (
	Big100 = big.NewInt(100)
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// Table is a mongo collection name
type Table string

const (
	TableAuctionEvents Table = "auction_events"
	TableAuctions      Table = "auctions"
	TableBids          Table = "bids"
	TableAccounts      Table = "approved_accounts"
	TableTrackerStates Table = "tracker_states"
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

// IsEmpty reports both the empty string and the zero address
func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid id %s", i)
	}
	return id, nil
}

// ParseAmount parses a base-10 unsigned integer amount, in wei
func ParseAmount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, ErrInvalidNumberFormat
	}
	return n, nil
}

// AmountString renders nil as "0"
func AmountString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}
