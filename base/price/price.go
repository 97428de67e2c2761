// Package price converts native amounts between wei and their display form
package price

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/auctionhouse/domain"
)

// NativeDecimals is the number of decimals of the native token
const NativeDecimals = 18

// FormatWei renders a base-10 wei string in ether, e.g. "105000000000000000" -> "0.105"
func FormatWei(wei string) (string, error) {
	n, err := domain.ParseAmount(wei)
	if err != nil {
		return "", err
	}
	return decimal.NewFromBigInt(n, -NativeDecimals).String(), nil
}

// ParseEther converts an ether amount such as "0.105" to wei. Fractions finer than one wei are rejected.
func ParseEther(ether string) (*big.Int, error) {
	d, err := decimal.NewFromString(ether)
	if err != nil {
		return nil, domain.ErrInvalidNumberFormat
	}
	wei := d.Shift(NativeDecimals)
	if !wei.Equal(wei.Truncate(0)) || wei.IsNegative() {
		return nil, domain.ErrInvalidNumberFormat
	}
	return wei.BigInt(), nil
}
