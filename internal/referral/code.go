// AngelaMos | 2026
// code.go

package referral

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrCodeExhausted means the generator could not find a free code
// within its attempt budget.
var ErrCodeExhausted = errors.New("invitation code space exhausted")

// CodeStore answers whether a candidate code is already taken.
type CodeStore interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// CodeGenerator produces invitation codes of the form PREFIX followed
// by length random characters from A-Z0-9, unique across all users.
type CodeGenerator struct {
	store    CodeStore
	prefix   string
	length   int
	attempts int
}

func NewCodeGenerator(
	store CodeStore,
	prefix string,
	length, attempts int,
) *CodeGenerator {
	return &CodeGenerator{
		store:    store,
		prefix:   prefix,
		length:   length,
		attempts: attempts,
	}
}

// Generate draws candidates until one is free or the attempt budget is
// spent. The bound keeps a dense code space from turning signup into an
// unbounded loop.
func (g *CodeGenerator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < g.attempts; i++ {
		code, err := g.randomCode()
		if err != nil {
			return "", fmt.Errorf("generate invitation code: %w", err)
		}

		exists, err := g.store.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("generate invitation code: %w", err)
		}

		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf(
		"generate invitation code after %d attempts: %w",
		g.attempts,
		ErrCodeExhausted,
	)
}

func (g *CodeGenerator) randomCode() (string, error) {
	buf := make([]byte, g.length)
	max := big.NewInt(int64(len(codeCharset)))

	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("random index: %w", err)
		}
		buf[i] = codeCharset[n.Int64()]
	}

	return g.prefix + string(buf), nil
}
