package compound

import (
	// 外部依赖
	"context"
	"errors"
	"io/fs"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphadose/haxmap"
	ants "github.com/panjf2000/ants/v2"

	// 内部引用
	config "github.com/scienceol/molcache/internal/config"
	common "github.com/scienceol/molcache/pkg/common"
	code "github.com/scienceol/molcache/pkg/common/code"
	coreCompound "github.com/scienceol/molcache/pkg/core/compound"
	logger "github.com/scienceol/molcache/pkg/middleware/logger"
	molcache "github.com/scienceol/molcache/pkg/molcache"
	repo "github.com/scienceol/molcache/pkg/repo"
	pubchemRepo "github.com/scienceol/molcache/pkg/repo/pubchem"
	utils "github.com/scienceol/molcache/pkg/utils"
)

const defaultWorkers = 5

// Options tunes the service. Zero fields fall back to the global config
// and package defaults.
type Options struct {
	Path     string
	Workers  int
	Provider repo.PubChemRepo
}

// call tracks one in-flight remote fetch so concurrent requests for the
// same key share a single upstream call.
type call struct {
	done chan struct{}
	rec  *molcache.Record
	err  error
}

type compoundImpl struct {
	mu    sync.Mutex // guards cache and dirty
	cache *molcache.Cache
	dirty bool

	path     string
	provider repo.PubChemRepo
	inflight *haxmap.Map[string, *call]
	pool     *ants.Pool
}

func New(ctx context.Context, opts *Options) (coreCompound.Service, error) {
	if opts == nil {
		opts = &Options{}
	}
	path := utils.Or(opts.Path, config.Global().Cache.Path)
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	provider := opts.Provider
	if provider == nil {
		provider = pubchemRepo.NewPubChemRepo()
	}

	cache, err := loadCache(ctx, path)
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(workers, ants.WithExpiryDuration(10*time.Second))
	if err != nil {
		return nil, code.UnDefineErr.WithErr(err)
	}

	return &compoundImpl{
		cache:    cache,
		path:     path,
		provider: provider,
		inflight: haxmap.New[string, *call](),
		pool:     pool,
	}, nil
}

// loadCache reads the persisted cache. A missing file is a normal first
// run and yields an empty cache; an unreadable or malformed file fails
// startup so a damaged cache is never silently reset.
func loadCache(ctx context.Context, path string) (*molcache.Cache, error) {
	cache, err := molcache.Load(path)
	if err == nil {
		logger.Infof(ctx, "cache loaded path: %s, entries: %d", path, cache.Len())
		return cache, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infof(ctx, "cache file %s not found, starting empty", path)
		return molcache.New(), nil
	}
	var ferr *molcache.FormatError
	if errors.As(err, &ferr) {
		return nil, code.CacheFormatErr.WithErr(err)
	}
	return nil, code.CacheFileErr.WithErr(err)
}

func (s *compoundImpl) Lookup(ctx context.Context, req *coreCompound.LookupReq) (*coreCompound.LookupResp, error) {
	key, err := toKey(req.Namespace, req.Identifier)
	if err != nil {
		return nil, err
	}

	if !req.Refresh {
		s.mu.Lock()
		rec, ok := s.cache.Get(key)
		s.mu.Unlock()
		if ok {
			return &coreCompound.LookupResp{Key: key, Cached: true, Properties: rec}, nil
		}
	}

	rec, cached, err := s.fetch(ctx, key, !req.Refresh)
	if err != nil {
		logger.Errorf(ctx, "Lookup fetch fail key: %s, err: %+v", key, err)
		return nil, err
	}
	return &coreCompound.LookupResp{Key: key, Cached: cached, Properties: rec}, nil
}

// fetch resolves key remotely and caches the result. Concurrent calls for
// the same key collapse onto one upstream request. With useCache set the
// leader also serves a hit that landed between the caller's miss and now,
// reported through the cached return.
func (s *compoundImpl) fetch(ctx context.Context, key molcache.Key, useCache bool) (rec *molcache.Record, cached bool, err error) {
	c := &call{done: make(chan struct{})}
	actual, loaded := s.inflight.GetOrSet(key.String(), c)
	if loaded {
		select {
		case <-actual.done:
			return actual.rec, false, actual.err
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}

	if useCache {
		s.mu.Lock()
		hit, ok := s.cache.Get(key)
		s.mu.Unlock()
		if ok {
			c.rec = hit
			s.inflight.Del(key.String())
			close(c.done)
			return hit, true, nil
		}
	}

	c.rec, c.err = s.provider.GetCompound(ctx, key)
	if c.err == nil {
		s.mu.Lock()
		s.cache.Insert(key, c.rec)
		s.dirty = true
		s.mu.Unlock()
	}
	s.inflight.Del(key.String())
	close(c.done)
	return c.rec, false, c.err
}

func (s *compoundImpl) Prefetch(ctx context.Context, req *coreCompound.PrefetchReq) (*coreCompound.PrefetchResp, error) {
	resp := &coreCompound.PrefetchResp{}
	var (
		respMu    sync.Mutex
		wg        sync.WaitGroup
		submitErr error
	)

	fail := func(q coreCompound.Query, err error) {
		respMu.Lock()
		resp.Failed = append(resp.Failed, &coreCompound.PrefetchFailure{
			Namespace:  q.Namespace,
			Identifier: q.Identifier,
			Msg:        code.Msg(err),
		})
		respMu.Unlock()
	}

	// Resolve and pre-check every query before scheduling, so an entry is
	// skipped only when it was already cached when the request arrived.
	type job struct {
		query coreCompound.Query
		key   molcache.Key
	}
	jobs := make([]job, 0, len(req.Queries))
	for _, q := range req.Queries {
		key, err := toKey(q.Namespace, q.Identifier)
		if err != nil {
			fail(q, err)
			continue
		}

		if !req.Refresh {
			s.mu.Lock()
			_, ok := s.cache.Get(key)
			s.mu.Unlock()
			if ok {
				resp.Skipped++
				continue
			}
		}
		jobs = append(jobs, job{query: q, key: key})
	}

	for _, j := range jobs {
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			if _, _, ferr := s.fetch(ctx, j.key, !req.Refresh); ferr != nil {
				logger.Warnf(ctx, "Prefetch fetch fail key: %s, err: %+v", j.key, ferr)
				fail(j.query, ferr)
				return
			}
			respMu.Lock()
			resp.Fetched++
			respMu.Unlock()
		}); err != nil {
			wg.Done()
			submitErr = code.PrefetchErr.WithErr(err)
			break
		}
	}

	wg.Wait()
	if submitErr != nil {
		return nil, submitErr
	}
	return resp, nil
}

func (s *compoundImpl) Evict(_ context.Context, req *coreCompound.EvictReq) (*coreCompound.EvictResp, error) {
	key, err := toKey(req.Namespace, req.Identifier)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	rec, ok := s.cache.Remove(key)
	if ok {
		s.dirty = true
	}
	s.mu.Unlock()

	return &coreCompound.EvictResp{Key: key, Removed: ok, Properties: rec}, nil
}

func (s *compoundImpl) Entries(_ context.Context, req *coreCompound.EntriesReq) (*common.PageResp[[]*coreCompound.EntryItem], error) {
	req.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.cache.Keys()
	if req.Namespace != "" {
		ns := molcache.Namespace(req.Namespace)
		filtered := make([]molcache.Key, 0, len(keys))
		for _, k := range keys {
			if k.Namespace == ns {
				filtered = append(filtered, k)
			}
		}
		keys = filtered
	}

	start := (req.Page - 1) * req.PageSize
	if start > len(keys) {
		start = len(keys)
	}
	end := start + req.PageSize
	if end > len(keys) {
		end = len(keys)
	}

	items := make([]*coreCompound.EntryItem, 0, end-start)
	for _, k := range keys[start:end] {
		rec, _ := s.cache.Get(k)
		items = append(items, &coreCompound.EntryItem{Key: k, Properties: rec})
	}

	return &common.PageResp[[]*coreCompound.EntryItem]{
		Data:     items,
		Total:    int64(len(keys)),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *compoundImpl) Stats(_ context.Context) (*coreCompound.StatsResp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, k := range s.cache.Keys() {
		counts[string(k.Namespace)]++
	}

	return &coreCompound.StatsResp{
		Entries:    s.cache.Len(),
		Empty:      s.cache.IsEmpty(),
		Namespaces: counts,
		Path:       s.path,
	}, nil
}

func (s *compoundImpl) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cache.Save(s.path); err != nil {
		logger.Errorf(ctx, "flush cache path: %s, err: %+v", s.path, err)
		return code.CacheSaveErr.WithErr(err)
	}
	s.dirty = false
	logger.Infof(ctx, "cache flushed path: %s, entries: %d", s.path, s.cache.Len())
	return nil
}

func (s *compoundImpl) Close(ctx context.Context) error {
	// Let queued prefetches land in the cache before the final save.
	if err := s.pool.ReleaseTimeout(10 * time.Second); err != nil && !errors.Is(err, ants.ErrPoolClosed) {
		logger.Warnf(ctx, "release prefetch pool err: %+v", err)
	}

	s.mu.Lock()
	dirty := s.dirty
	s.mu.Unlock()
	if !dirty {
		return nil
	}
	return s.Flush(ctx)
}

// toKey validates and normalizes one namespace/identifier query.
func toKey(namespace, identifier string) (molcache.Key, error) {
	ns := molcache.Namespace(strings.ToLower(strings.TrimSpace(namespace)))
	if !ns.Valid() {
		return molcache.Key{}, code.NamespaceErr.WithMsgf("namespace: %s", namespace)
	}
	if ns == molcache.NamespaceCID {
		cid, err := strconv.ParseUint(strings.TrimSpace(identifier), 10, 32)
		if err != nil {
			return molcache.Key{}, code.ParamErr.WithMsgf("cid must be an unsigned integer: %s", identifier)
		}
		return molcache.ByCID(uint32(cid)), nil
	}

	key := molcache.NewKey(ns, identifier)
	if key.Identifier == "" {
		return molcache.Key{}, code.ParamErr.WithMsg("identifier is empty")
	}
	return key, nil
}
