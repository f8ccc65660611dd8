package catalog

import (
	"context"
	"errors"
)

var (
	ErrPersist            = errors.New("catalog: persist failed")
	ErrUnsupportedVersion = errors.New("catalog: unsupported snapshot version")
)

// KV is the byte store the catalog writes through to. Implementations must be
// safe for use by one Store at a time; the Store serializes its own calls.
type KV interface {
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)
	Write(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

type slot string

const (
	slotProducts    slot = "products"
	slotCollections slot = "collections"
	slotSettings    slot = "settings"
)

const (
	KeyProducts    = "coconutProducts"
	KeyCollections = "coconutCollections"
	KeySettings    = "coconutSiteSettings"
)

func (s slot) key() string {
	switch s {
	case slotProducts:
		return KeyProducts
	case slotCollections:
		return KeyCollections
	default:
		return KeySettings
	}
}
