// Package namegen produces human-readable candidate identities.
// It guarantees nothing about uniqueness against already-assigned
// names; collision handling belongs to the caller.
package namegen

import (
	"strconv"

	"github.com/chainal/red-wolf-project/module/core/domain"
)

var defaultAdjectives = []string{
	"amber", "bold", "brisk", "calm", "clever", "crimson", "dusty",
	"eager", "frosty", "gentle", "hazel", "keen", "lively", "lunar",
	"mellow", "nimble", "pale", "quiet", "rapid", "rustic", "silent",
	"solar", "swift", "vivid", "wild",
}

var defaultNouns = []string{
	"badger", "crane", "falcon", "ferret", "fox", "heron", "ibis",
	"lark", "lynx", "marten", "otter", "owl", "panther", "raven",
	"seal", "shrew", "sparrow", "stoat", "swan", "tern", "viper",
	"vole", "weasel", "wolf", "wren",
}

const defaultMaxNumber = 10000

// Generator walks the adjective x noun x number space lazily, in a
// fixed order, one token per call. The sequence cannot be restarted.
// Not safe for concurrent use; callers serialize access (the identity
// service only drives it under the mint lock).
type Generator struct {
	adjectives []string
	nouns      []string
	maxNumber  int
	next       int
}

// New returns a Generator over the default corpus.
func New() *Generator {
	return NewWithCorpus(defaultAdjectives, defaultNouns, defaultMaxNumber)
}

// NewWithCorpus returns a Generator over a caller-supplied corpus.
// Intended for tests that need a small, exhaustible space.
func NewWithCorpus(adjectives, nouns []string, maxNumber int) *Generator {
	return &Generator{adjectives: adjectives, nouns: nouns, maxNumber: maxNumber}
}

// Next returns the next candidate in the sequence, in the form
// "adjective-noun-N". It returns domain.ErrNamesExhausted once every
// combination has been handed out.
func (g *Generator) Next() (string, error) {
	pairs := len(g.adjectives) * len(g.nouns)
	if pairs == 0 || g.next >= pairs*g.maxNumber {
		return "", domain.ErrNamesExhausted
	}

	i := g.next
	g.next++

	adj := g.adjectives[i%len(g.adjectives)]
	noun := g.nouns[(i/len(g.adjectives))%len(g.nouns)]
	number := i / pairs

	return adj + "-" + noun + "-" + strconv.Itoa(number), nil
}
