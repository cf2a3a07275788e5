package quill

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// IdentityLength is the size of an identity.
const IdentityLength = 32

// Identity identifies accounts and programs.
type Identity [IdentityLength]byte

// ParseIdentity will parse a hex encoded identity.
func ParseIdentity(str string) (Identity, error) {
	// decode
	buf, err := hex.DecodeString(str)
	if err != nil {
		return Identity{}, err
	}

	// check length
	if len(buf) != IdentityLength {
		return Identity{}, fmt.Errorf("quill: invalid identity length %d", len(buf))
	}

	// copy
	var id Identity
	copy(id[:], buf)

	return id, nil
}

// DeriveIdentity will derive the identity of an account from a base identity,
// a seed and the owning program.
func DeriveIdentity(base Identity, seed string, owner Identity) Identity {
	// hash inputs
	hash := sha256.New()
	hash.Write(base[:])
	hash.Write([]byte(seed))
	hash.Write(owner[:])

	// copy sum
	var id Identity
	copy(id[:], hash.Sum(nil))

	return id
}

// String returns the hex encoded identity.
func (i Identity) String() string {
	return hex.EncodeToString(i[:])
}

// Zero returns whether the identity is unset.
func (i Identity) Zero() bool {
	return i == Identity{}
}
