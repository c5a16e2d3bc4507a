package segment

import (
	"encoding/hex"
	"fmt"

	blake2b "github.com/minio/blake2b-simd"
)

const (
	// KeySize for the blake2b segment addressing scheme
	KeySize = 32

	// KeySizeHex for the hex representation of a key
	KeySizeHex = 2 * KeySize
)

// Key identifies a single segment in a store.
//
// Segments are content addressed: the key of a segment is the blake2b
// hash of its content.
type Key [KeySize]byte

// NewKey creates a new key from data
func NewKey(data []byte) (Key, error) {
	var k Key
	n := copy(k[:], data)
	if n != KeySize || len(data) != KeySize {
		return Key{}, &BadKeySize{Key: data}
	}
	return k, nil
}

// MustNewKey creates a new key from data but panics if there is an error
func MustNewKey(data []byte) Key {
	k, e := NewKey(data)
	if e != nil {
		panic(e.Error())
	}
	return k
}

// KeyFromString parses the hex representation of a key
func KeyFromString(s string) (Key, error) {
	if len(s) != KeySizeHex {
		return Key{}, &BadKeySize{Key: []byte(s)}
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return Key{}, &BadKeySize{Key: []byte(s)}
	}
	return NewKey(data)
}

// ContentKey computes the key addressing a segment with the given content
func ContentKey(data []byte) Key {
	hasher, err := blake2b.New(&blake2b.Config{Size: KeySize})
	if err != nil {
		// New only fails when configuration is wrong
		panic(err)
	}
	_, _ = hasher.Write(data)
	return MustNewKey(hasher.Sum(nil))
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// BadKeySize is an error that's returned when the key to create has an invalid size.
type BadKeySize struct {
	Key []byte
}

func (b *BadKeySize) Error() string {
	return fmt.Sprintf("%x has invalid size of %d, expected %d", b.Key, len(b.Key), KeySize)
}
