package kvstore

import (
	"fmt"

	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/config"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/enum"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/infra"
)

// NewFromConfig constructs an infra.KVStore based on kvstore configuration.
func NewFromConfig(cfg config.KVSConfig) (infra.KVStore, error) {
	switch cfg.Type {
	case enum.KVStoreTypeBadger:
		return NewBadgerStore(BadgerOptions{
			Directory: cfg.Badger.Directory,
			Prefix:    cfg.Badger.Prefix,
			InMemory:  cfg.Badger.InMemory,
			Codec:     infra.JSON,
		})
	default:
		return nil, fmt.Errorf("unsupported kvstore type: %s", cfg.Type)
	}
}
