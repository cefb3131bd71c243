package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"github.com/screa/eth-vanity/pkg/types"
)

const (
	// uncompressed public key without the 0x04 format byte: X (32) + Y (32)
	pubKeyLen = 64
	// Ethereum address = last 20 bytes of keccak256(pubkey)
	addressOffset = 12
	digestLen     = 32
)

// Errors
var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrAddressMismatch   = errors.New("private key does not derive the recorded address")
)

const hextable = "0123456789abcdef"

// Generator produces random key pairs and their addresses. It keeps a
// keccak hasher and scratch buffers across calls, so it is not safe for
// concurrent use; give each worker its own.
type Generator struct {
	rand    io.Reader
	hasher  hash.Hash
	entropy []byte
	pub     [pubKeyLen]byte
	digest  [digestLen]byte
	scalar  secp256k1.ModNScalar
	point   secp256k1.JacobianPoint
}

// NewGenerator creates a generator reading entropy from crypto/rand
func NewGenerator() *Generator {
	return NewGeneratorWithReader(rand.Reader)
}

// NewGeneratorWithReader creates a generator reading entropy from r
func NewGeneratorWithReader(r io.Reader) *Generator {
	return &Generator{
		rand:   r,
		hasher: sha3.NewLegacyKeccak256(),
	}
}

// DeriveAddress writes the lowercase hex address of priv into out. It
// returns false if priv is not a valid secp256k1 scalar (zero or >= n).
func (g *Generator) DeriveAddress(priv *[types.PrivateKeyLen]byte, out *[types.AddressLen]byte) bool {
	if overflow := g.scalar.SetBytes(priv); overflow != 0 || g.scalar.IsZero() {
		g.scalar.Zero()
		return false
	}

	secp256k1.ScalarBaseMultNonConst(&g.scalar, &g.point)
	g.point.ToAffine()
	g.point.X.PutBytesUnchecked(g.pub[:32])
	g.point.Y.PutBytesUnchecked(g.pub[32:])
	g.scalar.Zero()

	g.hasher.Reset()
	g.hasher.Write(g.pub[:])
	sum := g.hasher.Sum(g.digest[:0])

	hexEncode(out[:], sum[addressOffset:digestLen])
	return true
}

// Generate fills kp with a fresh random key pair. Draws that are not valid
// scalars are redrawn; only an entropy source failure is returned.
func (g *Generator) Generate(kp *types.KeyPair) error {
	for {
		if _, err := io.ReadFull(g.rand, kp.PrivateKey[:]); err != nil {
			return fmt.Errorf("reading entropy: %w", err)
		}
		if g.DeriveAddress(&kp.PrivateKey, &kp.Address) {
			return nil
		}
	}
}

// GenerateBatch fills dst with len(dst) key pairs and returns the filled
// slice. Entropy for the whole batch is read at once; the rare invalid
// draw is replaced individually.
func (g *Generator) GenerateBatch(dst []types.KeyPair) ([]types.KeyPair, error) {
	need := len(dst) * types.PrivateKeyLen
	if cap(g.entropy) < need {
		g.entropy = make([]byte, need)
	}
	g.entropy = g.entropy[:need]
	defer clear(g.entropy)

	if _, err := io.ReadFull(g.rand, g.entropy); err != nil {
		return dst[:0], fmt.Errorf("reading entropy: %w", err)
	}

	for i := range dst {
		kp := &dst[i]
		copy(kp.PrivateKey[:], g.entropy[i*types.PrivateKeyLen:])
		if g.DeriveAddress(&kp.PrivateKey, &kp.Address) {
			continue
		}
		if err := g.Generate(kp); err != nil {
			return dst[:i], err
		}
	}

	return dst, nil
}

// EncodePrivateKey returns the lowercase hex form of a private key
func EncodePrivateKey(priv *[types.PrivateKeyLen]byte) string {
	return hex.EncodeToString(priv[:])
}

// DecodePrivateKey parses a 64 digit hex private key, with or without 0x
func DecodePrivateKey(s string) ([types.PrivateKeyLen]byte, error) {
	var priv [types.PrivateKeyLen]byte

	h := strings.TrimPrefix(strings.TrimSpace(s), types.AddressPrefix)
	if len(h) != 2*types.PrivateKeyLen {
		return priv, fmt.Errorf("%w: got %d hex chars, want %d", ErrInvalidPrivateKey, len(h), 2*types.PrivateKeyLen)
	}
	if _, err := hex.Decode(priv[:], []byte(h)); err != nil {
		return priv, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return priv, nil
}

// AddressFromPrivateKey derives the lowercase hex address (no prefix) of a
// hex encoded private key.
func AddressFromPrivateKey(privHex string) (string, error) {
	priv, err := DecodePrivateKey(privHex)
	if err != nil {
		return "", err
	}

	var out [types.AddressLen]byte
	if !NewGenerator().DeriveAddress(&priv, &out) {
		return "", fmt.Errorf("%w: not a valid secp256k1 scalar", ErrInvalidPrivateKey)
	}
	return string(out[:]), nil
}

// ChecksumAddress returns the EIP-55 mixed-case form of a hex address
func ChecksumAddress(address string) string {
	return common.HexToAddress(address).Hex()
}

// hexEncode encodes src into dst as lowercase hexadecimal.
// dst must be at least len(src)*2 bytes.
func hexEncode(dst, src []byte) {
	for i, v := range src {
		dst[i*2] = hextable[v>>4]
		dst[i*2+1] = hextable[v&0x0f]
	}
}
