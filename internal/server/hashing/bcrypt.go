package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BCrypt implements Impl on golang.org/x/crypto/bcrypt.
type BCrypt struct {
	cost int
}

func NewBCrypt(cost int) (*BCrypt, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d outside [%d,%d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BCrypt{cost: cost}, nil
}

func (b *BCrypt) Compute(plaintext string) (string, error) {
	hashVal, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash error: %w", err)
	}
	return string(hashVal), nil
}

func (b *BCrypt) Verify(plaintext string, hashVal string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashVal), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("bcrypt verify error: %w", err)
}
