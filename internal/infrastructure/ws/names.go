package ws

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// NewNameGenerator returns a generator of short display names like
// "guest-x7k2pq".
func NewNameGenerator() (func() string, error) {
	gen, err := nanoid.CustomASCII("0123456789abcdefghijklmnopqrstuvwxyz", 6)
	if err != nil {
		return nil, fmt.Errorf("failed to create name generator: %w", err)
	}

	return func() string {
		return "guest-" + gen()
	}, nil
}
