package secret

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[REDACTED]"

// Secret is an API credential that never prints or marshals its value.
// Only Reveal exposes the underlying string, which should be reserved for writing request bodies.
type Secret struct {
	value string
}

var (
	_ fmt.Formatter    = Secret{}
	_ fmt.Stringer     = Secret{}
	_ json.Marshaler   = Secret{}
	_ json.Unmarshaler = &Secret{}
)

// New returns a Secret set to s
func New(s string) Secret {
	return Secret{value: s}
}

// Reveal returns the plaintext secret
func (s Secret) Reveal() string {
	return s.value
}

// IsEmpty returns true if no credential was set
func (s Secret) IsEmpty() bool {
	return s.value == ""
}

// String implements fmt.Stringer, which also covers zap.Stringer fields
func (s Secret) String() string {
	return redacted
}

// Format prints the redacted placeholder for every verb, including %#v and %d
func (s Secret) Format(f fmt.State, _ rune) {
	io.WriteString(f, redacted)
}

// MarshalJSON returns JSON 'null' to prevent serialization within a struct
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// UnmarshalJSON deserializes a JSON string into s
func (s *Secret) UnmarshalJSON(b []byte) error {
	var value string
	if err := json.Unmarshal(b, &value); err != nil {
		return err
	}
	s.value = value
	return nil
}
