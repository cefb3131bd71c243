package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/screa/eth-vanity/pkg/types"
)

// Verify re-derives the address of a match with go-ethereum, independently
// of Generator, and checks it against the recorded address.
func Verify(m types.MatchResult) error {
	key, err := gethcrypto.HexToECDSA(strings.TrimPrefix(m.PrivateKey, types.AddressPrefix))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	derived := hex.EncodeToString(gethcrypto.PubkeyToAddress(key.PublicKey).Bytes())
	if derived != strings.ToLower(strings.TrimPrefix(m.Address, types.AddressPrefix)) {
		return fmt.Errorf("%w: derived 0x%s, recorded %s", ErrAddressMismatch, derived, m.Address)
	}
	return nil
}
