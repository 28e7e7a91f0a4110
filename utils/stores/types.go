package stores

import "errors"

// KeyValueStore persists one flat string map per namespace. Every save
// rewrites the namespace wholesale; there is no incremental patching. The
// backing mechanism (JSON file, sqlite table, pinned chat message) is
// interchangeable.
type KeyValueStore interface {
	Load(namespace string) (map[string]string, error)
	SaveAll(namespace string, values map[string]string) error
}

var (
	ErrStoreChatMissing   = errors.New("store chat is not configured")
	ErrNoPinnedMessage    = errors.New("store chat has no pinned message")
	ErrUnknownBackend     = errors.New("unknown store backend")
	ErrMalformedStoreBody = errors.New("store body does not contain a fenced JSON block")
)
