package auction

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinNextBid(t *testing.T) {
	tests := []struct {
		name       string
		reserve    int64
		currentBid int64
		pct        uint8
		want       int64
	}{
		{name: "first bid takes the reserve", reserve: 100, currentBid: 0, pct: 5, want: 100},
		{name: "5 percent", reserve: 100, currentBid: 100, pct: 5, want: 105},
		{name: "truncated", reserve: 1, currentBid: 119, pct: 5, want: 124},
		{name: "increment rounds to zero", reserve: 1, currentBid: 10, pct: 5, want: 11},
		{name: "zero percent", reserve: 1, currentBid: 50, pct: 0, want: 51},
		{name: "doubling", reserve: 1, currentBid: 50, pct: 100, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Auction{
				ReservePrice:              big.NewInt(tt.reserve),
				CurrentBid:                big.NewInt(tt.currentBid),
				MinBidIncrementPercentage: tt.pct,
			}
			require.Equal(t, big.NewInt(tt.want).String(), a.MinNextBid().String())
		})
	}
}

func TestState(t *testing.T) {
	req := require.New(t)
	a := &Auction{ReservePrice: big.NewInt(1), CurrentBid: new(big.Int)}
	req.Equal(StateQueued, a.State())
	req.False(a.IsLive(10))

	a.StartTime, a.EndTime = 10, 20
	req.Equal(StateActive, a.State())
	req.True(a.IsLive(19))
	req.False(a.IsLive(20))

	clone := a.Clone()
	clone.ReservePrice.SetInt64(5)
	req.Equal("1", a.ReservePrice.String())

	a.Settled = true
	req.Equal(StateSettled, a.State())
	req.True(a.IsTerminal())
	req.False(a.IsLive(15))

	req.Equal(StateCancelled, (&Auction{Cancelled: true}).State())
}
