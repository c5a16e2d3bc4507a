// Package rand provides random data generators for tests.
package rand

import (
	"math/rand"
	"sync"
	"time"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	mu  sync.Mutex
	src = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Bytes returns a random slice of bytes
func Bytes(n int) []byte {
	b := make([]byte, n)
	mu.Lock()
	_, _ = src.Read(b)
	mu.Unlock()
	return b
}

// String returns a random string
func String(n int) string {
	return string(LetterBytes(n))
}

// LetterBytes returns a random slice of bytes picked in the [0-9]|[a-z] range
func LetterBytes(n int) []byte {
	b := make([]byte, n)
	mu.Lock()
	for i := range b {
		b[i] = letterBytes[src.Intn(len(letterBytes))]
	}
	mu.Unlock()
	return b
}
