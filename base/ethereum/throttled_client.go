package ethereum

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ThrottledClient caps the number of rpc calls in flight. It overrides the
// calls a contract binding makes, everything else goes straight through.
type ThrottledClient struct {
	*ethclient.Client
	tokens chan struct{}
}

func NewThrottledClient(client *ethclient.Client, n int) *ThrottledClient {
	if n <= 0 {
		n = 1
	}
	return &ThrottledClient{
		Client: client,
		tokens: make(chan struct{}, n),
	}
}

func (c *ThrottledClient) CodeAt(ctx context.Context, address common.Address, number *big.Int) ([]byte, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}
	defer c.after()
	return c.Client.CodeAt(ctx, address, number)
}

func (c *ThrottledClient) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}
	defer c.after()
	return c.Client.CallContract(ctx, msg, number)
}

func (c *ThrottledClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}
	defer c.after()
	return c.Client.HeaderByNumber(ctx, number)
}

func (c *ThrottledClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	if err := c.before(ctx); err != nil {
		return 0, err
	}
	defer c.after()
	return c.Client.PendingNonceAt(ctx, account)
}

func (c *ThrottledClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	if err := c.before(ctx); err != nil {
		return 0, err
	}
	defer c.after()
	return c.Client.EstimateGas(ctx, msg)
}

func (c *ThrottledClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := c.before(ctx); err != nil {
		return err
	}
	defer c.after()
	return c.Client.SendTransaction(ctx, tx)
}

func (c *ThrottledClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if err := c.before(ctx); err != nil {
		return nil, err
	}
	defer c.after()
	return c.Client.TransactionReceipt(ctx, hash)
}

func (c *ThrottledClient) before(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case c.tokens <- struct{}{}:
		return nil
	}
}

func (c *ThrottledClient) after() {
	<-c.tokens
}
