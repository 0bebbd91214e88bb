// Package hashing wraps the one-way password hashing algorithms the service
// supports. Hash computation always uses the configured algorithm; hash
// verification dispatches strictly on the algorithm identifier stored with
// the credential, never on the current configuration, so a config change can
// never silently "verify" old hashes under the wrong algorithm.
package hashing

import (
	"fmt"

	"github.com/twit2/t2-auth/internal/common"
)

// HashAlgo identifies a password hashing algorithm. Values are persisted with
// each credential and are part of the storage contract.
type HashAlgo int

const (
	AlgoBCrypt HashAlgo = 1
	// AlgoSHA256 is reserved in the schema but has no registered
	// implementation; any credential carrying it fails verification with
	// ErrorUnsupportedAlgo.
	AlgoSHA256 HashAlgo = 2
)

// Impl computes and verifies hashes for a single algorithm.
type Impl interface {
	Compute(plaintext string) (string, error)
	Verify(plaintext string, hashVal string) (bool, error)
}

// Hasher dispatches between registered algorithm implementations.
type Hasher struct {
	active HashAlgo
	impls  map[HashAlgo]Impl
}

// ParseAlgo maps a configured algorithm name to its identifier.
func ParseAlgo(name string) (HashAlgo, error) {
	switch name {
	case "bcrypt":
		return AlgoBCrypt, nil
	default:
		return 0, fmt.Errorf("%w: %q", common.ErrorUnsupportedAlgo, name)
	}
}

// New builds a Hasher with the given active algorithm and cost parameter.
// Fails if the active algorithm has no implementation or the cost is outside
// the algorithm's supported range.
func New(algoName string, cost int) (*Hasher, error) {
	algo, err := ParseAlgo(algoName)
	if err != nil {
		return nil, err
	}

	bc, err := NewBCrypt(cost)
	if err != nil {
		return nil, err
	}

	h := &Hasher{
		active: algo,
		impls:  map[HashAlgo]Impl{AlgoBCrypt: bc},
	}

	if _, ok := h.impls[algo]; !ok {
		return nil, fmt.Errorf("%w: algo %d", common.ErrorUnsupportedAlgo, algo)
	}

	return h, nil
}

// Compute hashes plaintext with the active algorithm and returns the
// algorithm identifier alongside the hash value, ready to persist.
func (h *Hasher) Compute(plaintext string) (HashAlgo, string, error) {
	impl, ok := h.impls[h.active]
	if !ok {
		return 0, "", fmt.Errorf("%w: algo %d", common.ErrorUnsupportedAlgo, h.active)
	}

	hashVal, err := impl.Compute(plaintext)
	if err != nil {
		return 0, "", err
	}

	return h.active, hashVal, nil
}

// Verify checks plaintext against a stored hash using the algorithm the hash
// was created with. A wrong password yields (false, nil); an algorithm with
// no registered verifier yields ErrorUnsupportedAlgo.
func (h *Hasher) Verify(plaintext string, algo HashAlgo, hashVal string) (bool, error) {
	impl, ok := h.impls[algo]
	if !ok {
		return false, fmt.Errorf("%w: algo %d", common.ErrorUnsupportedAlgo, algo)
	}

	return impl.Verify(plaintext, hashVal)
}
