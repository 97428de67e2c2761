package chain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/ethereum"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/base/metrics"
	"github.com/x-xyz/auctionhouse/domain"
)

var (
	ErrNoSigner       = errors.New("chain client has no signing key")
	ErrReceiptFailure = errors.New("transaction reverted")
)

type ClientCfg struct {
	ChainId domain.ChainId
	RpcUrl  string
	// PrivateKey signs the house's transactions, hex encoded. Read only clients leave it empty.
	PrivateKey     string
	MaxConcurrency int
	MineTimeout    time.Duration
}

type Client interface {
	Call(c bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	// Transact sends a signed call and waits until it is mined successfully
	Transact(c bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) (*types.Receipt, error)
	// Sender is the address the house signs with
	Sender() domain.Address
}

type clientImpl struct {
	client      *ethereum.ThrottledClient
	chainId     *big.Int
	key         *ecdsa.PrivateKey
	sender      domain.Address
	mineTimeout time.Duration
	met         metrics.Service
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	raw, err := ethclient.DialContext(ctx, cfg.RpcUrl)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": cfg.ChainId,
			"url":     cfg.RpcUrl,
		}).Error("failed to dial rpc")
		return nil, err
	}
	impl := &clientImpl{
		client:      ethereum.NewThrottledClient(raw, cfg.MaxConcurrency),
		chainId:     big.NewInt(int64(cfg.ChainId)),
		mineTimeout: cfg.MineTimeout,
		met:         metrics.New("chain"),
	}
	if impl.mineTimeout <= 0 {
		impl.mineTimeout = 3 * time.Minute
	}
	if cfg.PrivateKey != "" {
		key, addr, err := ethereum.ParsePrivateKey(cfg.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}
		impl.key = key
		impl.sender = addr
	}
	return impl, nil
}

func (c *clientImpl) Sender() domain.Address {
	return c.sender
}

func (c *clientImpl) Call(ctx bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	defer c.met.BumpTime("call.time", "method", method).End()

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := goethereum.CallMsg{To: &addr, Data: data}
	res, err := c.client.CallContract(ctx, msg, nil)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "method": method}).Warn("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) Transact(ctx bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) (*types.Receipt, error) {
	if c.key == nil {
		return nil, ErrNoSigner
	}
	defer c.met.BumpTime("transact.time", "method", method).End()

	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainId)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	contract := bind.NewBoundContract(addr, _abi, c.client, c.client, c.client)
	tx, err := contract.Transact(opts, method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "method": method}).Error("contract.Transact failed")
		return nil, err
	}

	mineCtx, cancel := bCtx.WithTimeout(ctx, c.mineTimeout)
	defer cancel()
	receipt, err := bind.WaitMined(mineCtx, c.client, tx)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "tx": tx.Hash().Hex()}).Error("bind.WaitMined failed")
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		c.met.BumpSum("transact.reverted", 1, "method", method)
		return receipt, fmt.Errorf("%s %s: %w", method, tx.Hash().Hex(), ErrReceiptFailure)
	}
	ctx.WithFields(log.Fields{
		"method": method,
		"tx":     tx.Hash().Hex(),
		"gas":    receipt.GasUsed,
	}).Info("transaction mined")
	return receipt, nil
}
