// Package guestname generates the human-readable usernames assigned to
// anonymous players, in the adjective_animal style (e.g. "happy_otter").
package guestname

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var adjectives = []string{
	"amber", "bold", "brave", "breezy", "bright", "calm", "cheery", "clever",
	"cosmic", "crafty", "daring", "dapper", "eager", "fuzzy", "gentle",
	"giddy", "happy", "hardy", "jolly", "keen", "lively", "lucky", "mellow",
	"merry", "mighty", "nimble", "peppy", "plucky", "proud", "quick",
	"quiet", "rapid", "sleek", "snappy", "spry", "stellar", "sunny", "swift",
	"witty", "zesty",
}

var animals = []string{
	"badger", "beaver", "bison", "condor", "cougar", "coyote", "crane",
	"falcon", "ferret", "finch", "gecko", "heron", "ibex", "jackal",
	"koala", "lemur", "lynx", "marmot", "marten", "moose", "narwhal",
	"ocelot", "osprey", "otter", "owl", "panther", "pelican", "puffin",
	"quokka", "rabbit", "raccoon", "raven", "salmon", "seal", "sparrow",
	"tapir", "toucan", "walrus", "wombat", "wren",
}

// Generate returns a random adjective_animal username
func Generate() string {
	return pick(adjectives) + "_" + pick(animals)
}

// WithSuffix appends a random numeric suffix, used when the plain name
// collides with an existing user after a bounded number of retries.
func WithSuffix(name string) string {
	return fmt.Sprintf("%s_%d", name, randomInt(1000))
}

func pick(words []string) string {
	return words[randomInt(len(words))]
}

func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken;
		// a fixed index still yields a valid (if less varied) name.
		return 0
	}
	return int(v.Int64())
}
