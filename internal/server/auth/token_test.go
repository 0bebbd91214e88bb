package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/twit2/t2-auth/internal/common"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("super-secret"), time.Hour)
	ownerID := "owner-123"

	tok, err := ts.Issue(ownerID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	subject, err := ts.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if subject != ownerID {
		t.Fatalf("subject mismatch: got %q want %q", subject, ownerID)
	}
}

func TestIssueAndVerify_CallerWipesKey(t *testing.T) {
	t.Parallel()

	key := []byte("super-secret")
	ts := NewTokenService(key, time.Hour)
	common.WipeByteArray(key)

	tok, err := ts.Issue("o0")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := ts.Verify(tok); err != nil {
		t.Fatalf("Verify error after wiping source key: %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("secret"), -1*time.Second)

	tok, err := ts.Issue("o1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = ts.Verify(tok)
	if !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("right-secret"), time.Hour)
	verifier := NewTokenService([]byte("wrong-secret"), time.Hour)

	tok, err := issuer.Issue("o2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := verifier.Verify(tok); !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken for bad signature, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("secret"), time.Hour)
	tok, err := ts.Issue("o3")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(tok, ".")
	tampered := parts[0] + ".eyJzdWIiOiJzb21lb25lLWVsc2UifQ." + parts[2]

	if _, err := ts.Verify(tampered); !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken for tampered token, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("k"), time.Hour)
	if _, err := ts.Verify("not.a.jwt"); !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken for malformed token, got %v", err)
	}
}

func TestLoadKey_EmptyGeneratesRandom(t *testing.T) {
	t.Parallel()

	a, err := LoadKey("")
	if err != nil {
		t.Fatalf("LoadKey error: %v", err)
	}
	b, err := LoadKey("")
	if err != nil {
		t.Fatalf("LoadKey error: %v", err)
	}
	if len(a) != 64 || len(b) != 64 {
		t.Fatalf("expected 64-byte keys, got %d and %d", len(a), len(b))
	}
	if string(a) == string(b) {
		t.Fatal("two generated keys are identical")
	}
}

func TestLoadKey_Hex(t *testing.T) {
	t.Parallel()

	key, err := LoadKey("deadbeef")
	if err != nil {
		t.Fatalf("LoadKey error: %v", err)
	}
	if len(key) != 4 {
		t.Fatalf("expected 4 bytes, got %d", len(key))
	}

	if _, err := LoadKey("not-hex"); err == nil {
		t.Fatal("expected error for invalid hex key")
	}
}
