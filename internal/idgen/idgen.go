// Package idgen produces complaint identifiers of the form
// COMP-<epoch-millis>-<n>, where n is drawn uniformly from [0, 1000).
package idgen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"complaintportal/backend/internal/config"
)

// ErrIDSpaceExhausted is returned when every candidate drawn collided with an
// existing record.
var ErrIDSpaceExhausted = errors.New("no free complaint identifier")

// ExistsFunc reports whether id is already used by a stored record.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

var pattern = regexp.MustCompile(`^` + config.IDPrefix + `-\d+-\d{1,3}$`)

// Valid reports whether id has the generator's format.
func Valid(id string) bool {
	return pattern.MatchString(id)
}

// Generator hands out identifiers. The zero value is not usable; call New.
type Generator struct {
	exists      ExistsFunc
	now         func() time.Time
	intn        func(n int) int
	maxAttempts int
}

// Option customises a Generator.
type Option func(*Generator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRandom replaces the random source. intn must return a value in [0, n).
func WithRandom(intn func(n int) int) Option {
	return func(g *Generator) { g.intn = intn }
}

// New creates a Generator. exists may be nil, in which case candidates are not
// checked against the store.
func New(exists ExistsFunc, opts ...Option) *Generator {
	g := &Generator{
		exists:      exists,
		now:         time.Now,
		intn:        rand.IntN,
		maxAttempts: config.IDMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns an identifier not currently present in the store.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		id := fmt.Sprintf("%s-%d-%d", config.IDPrefix, g.now().UnixMilli(), g.intn(config.IDRandomBound))
		if g.exists == nil {
			return id, nil
		}
		taken, err := g.exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check identifier %s: %w", id, err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}
