package hashing

import (
	"errors"
	"testing"

	"github.com/twit2/t2-auth/internal/common"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := New("bcrypt", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return h
}

func TestComputeAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	algo, hashVal, err := h.Compute("pw12345678")
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if algo != AlgoBCrypt {
		t.Fatalf("expected AlgoBCrypt, got %d", algo)
	}
	if hashVal == "pw12345678" {
		t.Fatal("hash value must not equal plaintext")
	}

	ok, err := h.Verify("pw12345678", algo, hashVal)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected correct password to verify")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	algo, hashVal, err := h.Compute("correct-horse")
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	ok, err := h.Verify("battery-staple", algo, hashVal)
	if err != nil {
		t.Fatalf("wrong password must not be an error, got: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestVerify_StoredAlgoWithoutVerifier(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	_, err := h.Verify("pw", AlgoSHA256, "whatever")
	if !errors.Is(err, common.ErrorUnsupportedAlgo) {
		t.Fatalf("expected ErrorUnsupportedAlgo, got %v", err)
	}
}

func TestNew_UnknownAlgoName(t *testing.T) {
	t.Parallel()

	_, err := New("rot13", 10)
	if !errors.Is(err, common.ErrorUnsupportedAlgo) {
		t.Fatalf("expected ErrorUnsupportedAlgo, got %v", err)
	}
}

func TestNew_CostOutOfRange(t *testing.T) {
	t.Parallel()

	if _, err := New("bcrypt", bcrypt.MaxCost+1); err == nil {
		t.Fatal("expected error for out-of-range cost")
	}
}
