// Package signer owns the wallet capability and the EIP-712 domain
// binding for order signing. The raw elliptic-curve work is delegated to
// go-ethereum; the domain and hash canonicalization live here.
package signer

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"polymarket-hotpath/apperrors"
)

// Wallet 持有下单钱包的私钥，只暴露地址与对哈希签名两个能力。
// 私钥从不序列化。
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewWallet derives a wallet from a hex-encoded secp256k1 private key.
func NewWallet(hexKey string) (*Wallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, apperrors.Validationf("invalid private key: %v", err)
	}
	return &Wallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the EOA address controlled by the wallet.
func (w *Wallet) Address() common.Address { return w.address }

// SignHash produces an Ethereum-style 65-byte signature over hash with
// the recovery id adjusted to 27/28.
func (w *Wallet) SignHash(hash common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(hash.Bytes(), w.key)
	if err != nil {
		return nil, apperrors.Validationf("sign hash: %v", err)
	}
	if sig[64] < 27 {
		sig[64] += 27
	}
	return sig, nil
}
