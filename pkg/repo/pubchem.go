package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	molcache "github.com/scienceol/molcache/pkg/molcache"
)

// PubChemRepo resolves compound queries against the PubChem PUG REST API.
type PubChemRepo interface {
	GetCompound(ctx context.Context, key molcache.Key) (*molcache.Record, error)
}
