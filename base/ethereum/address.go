package ethereum

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/x-xyz/auctionhouse/domain"
)

func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	if privateKey, err := crypto.GenerateKey(); err != nil {
		return nil, nil, err
	} else {
		publicKey := privateKey.Public().(*ecdsa.PublicKey)
		return privateKey, publicKey, nil
	}
}

// ParseAddress checks the hex form and returns the lowercased address
func ParseAddress(s string) (domain.Address, error) {
	if !common.IsHexAddress(s) {
		return "", domain.ErrInvalidAddress
	}
	return domain.Address(strings.ToLower(common.HexToAddress(s).Hex())), nil
}

// ParsePrivateKey accepts a hex key with or without 0x and returns it with its address
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, domain.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, "", err
	}
	addr := crypto.PubkeyToAddress(key.PublicKey).Hex()
	return key, domain.Address(strings.ToLower(addr)), nil
}
