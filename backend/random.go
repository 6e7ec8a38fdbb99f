package main

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// intnSource is the slice of randomness the engine draws on. Tests swap in
// scripted sources.
type intnSource interface {
	IntN(n int) int
}

// newGameRNG returns a ChaCha8 generator with a crypto-random seed. Every
// player gets its own so searches can run concurrently.
func newGameRNG() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic(err)
	}
	return rand.New(rand.NewChaCha8(seed))
}
