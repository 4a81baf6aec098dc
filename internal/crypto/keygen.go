package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/sha3"
)

// ErrKeyGeneration means the entropy source or key derivation failed. It
// indicates a broken host and must not be retried.
var ErrKeyGeneration = errors.New("could not generate a random keypair")

// KeyPair is a private key and the address derived from its public key
type KeyPair struct {
	PrivateKey *secp256k1.PrivateKey
	Address    string
}

// PrivateKeyHex returns the 32-byte private scalar as 64 lowercase hex chars
func (k *KeyPair) PrivateKeyHex() string {
	b := k.PrivateKey.Serialize()
	defer zero(b)
	return hex.EncodeToString(b)
}

// Generator draws keypairs and derives their addresses. A Generator keeps
// scratch buffers and is not safe for concurrent use; give each worker its
// own.
type Generator struct {
	rand   io.Reader
	hasher hash.Hash
	digest [digestLen]byte
}

// NewGenerator creates a generator reading entropy from r. A nil r uses
// crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{
		rand:   r,
		hasher: sha3.NewLegacyKeccak256(),
	}
}

// Generate draws a fresh private key and derives its address
func (g *Generator) Generate() (*KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKeyFromRand(g.rand)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &KeyPair{
		PrivateKey: priv,
		Address:    g.address(priv.PubKey()),
	}, nil
}

// address hashes the 64-byte X||Y coordinates of pub, dropping the 0x04
// uncompressed tag, and hex encodes the last 20 bytes of the digest.
func (g *Generator) address(pub *secp256k1.PublicKey) string {
	serialized := pub.SerializeUncompressed()

	g.hasher.Reset()
	g.hasher.Write(serialized[1:])
	sum := g.hasher.Sum(g.digest[:0])

	return hex.EncodeToString(sum[addressIndex:])
}

// AddressFromPrivateKey derives the address of a 32-byte private key
func AddressFromPrivateKey(key []byte) (string, error) {
	if len(key) != secp256k1.PrivKeyBytesLen {
		return "", fmt.Errorf("private key must be %d bytes, got %d", secp256k1.PrivKeyBytesLen, len(key))
	}
	priv := secp256k1.PrivKeyFromBytes(key)
	defer priv.Zero()

	return NewGenerator(nil).address(priv.PubKey()), nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
