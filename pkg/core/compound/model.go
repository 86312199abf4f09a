package compound

import (
	// 内部引用
	common "github.com/scienceol/molcache/pkg/common"
	molcache "github.com/scienceol/molcache/pkg/molcache"
)

type LookupReq struct {
	Namespace  string `form:"namespace" json:"namespace" binding:"required"`
	Identifier string `form:"identifier" json:"identifier" binding:"required"`
	Refresh    bool   `form:"refresh" json:"refresh"`
}

type LookupResp struct {
	Key molcache.Key `json:"key"`
	// Cached is true when the record came from the cache rather than a
	// fresh remote call.
	Cached     bool             `json:"cached"`
	Properties *molcache.Record `json:"properties"`
}

type Query struct {
	Namespace  string `json:"namespace" binding:"required"`
	Identifier string `json:"identifier" binding:"required"`
}

type PrefetchReq struct {
	Queries []Query `json:"queries" binding:"required,min=1,dive"`
	Refresh bool    `json:"refresh"`
}

type PrefetchFailure struct {
	Namespace  string `json:"namespace"`
	Identifier string `json:"identifier"`
	Msg        string `json:"msg"`
}

type PrefetchResp struct {
	Fetched int                `json:"fetched"`
	Skipped int                `json:"skipped"`
	Failed  []*PrefetchFailure `json:"failed,omitempty"`
}

type EvictReq struct {
	Namespace  string `form:"namespace" json:"namespace" binding:"required"`
	Identifier string `form:"identifier" json:"identifier" binding:"required"`
}

type EvictResp struct {
	Key        molcache.Key     `json:"key"`
	Removed    bool             `json:"removed"`
	Properties *molcache.Record `json:"properties,omitempty"`
}

type EntriesReq struct {
	common.PageReq
	// Namespace narrows the listing to one namespace when set.
	Namespace string `form:"namespace" json:"namespace"`
}

type EntryItem struct {
	Key        molcache.Key     `json:"key"`
	Properties *molcache.Record `json:"properties"`
}

type StatsResp struct {
	Entries    int            `json:"entries"`
	Empty      bool           `json:"empty"`
	Namespaces map[string]int `json:"namespaces"`
	Path       string         `json:"path"`
}
