package xviper

import (
	"github.com/google/uuid"
)

const (
	identityKey = `client.identity`
)

// ClientIdentity returns the stable identity this installation sends to the
// backend, generating and remembering a new one on first use.
func ClientIdentity() string {
	identity := GetString(identityKey)
	if _, err := uuid.Parse(identity); err != nil {
		identity = uuid.NewString()
		Set(identityKey, identity)
	}
	return identity
}

// RenewIdentity forgets the current identity and generates a fresh one.
func RenewIdentity() string {
	identity := uuid.NewString()
	Set(identityKey, identity)
	return identity
}
