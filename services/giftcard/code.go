package giftcard

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

const (
	// CodeAlphabet omits the look-alikes I, O, 0 and 1.
	CodeAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codePrefix     = "BB-"
	codeLength     = 10
	fallbackLength = 12
	maxAttempts    = 5
)

var codePattern = regexp.MustCompile(`^BB-([ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{10}|[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{12})$`)

// ValidCode reports whether s has the shape of an issued gift-card code.
func ValidCode(s string) bool {
	return codePattern.MatchString(s)
}

// RandomCode returns the prefix followed by n characters from CodeAlphabet.
func RandomCode(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(CodeAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		buf[i] = CodeAlphabet[idx.Int64()]
	}
	return codePrefix + string(buf), nil
}

// existsFunc checks a candidate code against issued codes.
type existsFunc func(ctx context.Context, code string) (bool, error)

// uniqueCode tries up to maxAttempts short codes, then returns one long code unchecked.
func uniqueCode(ctx context.Context, exists existsFunc, random func(int) (string, error)) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code, err := random(codeLength)
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return random(fallbackLength)
}
