package salt

import (
	"context"
	"crypto/rand"
)

// RandomSource is the unconstrained last resort. The salt it returns will
// generally NOT satisfy the hook predicate; the engine flags the result as
// non-mined so downstream consumers never assume the bit-mask holds.
type RandomSource struct{}

func (RandomSource) Name() string {
	return "random"
}

func (RandomSource) Mine(ctx context.Context, req MineRequest) (Salt, error) {
	var s Salt
	if _, err := rand.Read(s[:]); err != nil {
		return Salt{}, err
	}
	return s, nil
}
