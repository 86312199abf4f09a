package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	common "github.com/scienceol/molcache/pkg/common"
	code "github.com/scienceol/molcache/pkg/common/code"
	coreCompound "github.com/scienceol/molcache/pkg/core/compound"
	impl "github.com/scienceol/molcache/pkg/core/compound/compound"
	molcache "github.com/scienceol/molcache/pkg/molcache"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func ptr[T any](v T) *T {
	return &v
}

type fakeProvider struct {
	mu      sync.Mutex
	records map[molcache.Key]*molcache.Record
}

func (f *fakeProvider) add(key molcache.Key, rec *molcache.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[key] = rec
}

func (f *fakeProvider) GetCompound(_ context.Context, key molcache.Key) (*molcache.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[key]; ok {
		return rec.Clone(), nil
	}
	return nil, code.CompoundNotFound.WithMsgf("no compound for %s", key)
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeProvider, string) {
	t.Helper()
	f := &fakeProvider{records: map[molcache.Key]*molcache.Record{}}
	path := filepath.Join(t.TempDir(), "compounds.json")
	svc, err := impl.New(t.Context(), &impl.Options{Path: path, Provider: f})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	t.Cleanup(func() {
		_ = svc.Close(context.Background())
	})

	g := gin.New()
	NewRouter(g, svc)
	return g, f, path
}

func do(t *testing.T, g *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) *common.RespT[T] {
	t.Helper()
	resp := &common.RespT[T]{}
	if err := json.Unmarshal(w.Body.Bytes(), resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	g, _, _ := newTestRouter(t)

	for _, target := range []string{"/api/health", "/api/health/live", "/api/health/ready"} {
		w := do(t, g, http.MethodGet, target, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s returned %d, want 200", target, w.Code)
		}
	}
}

func TestReadyWithoutService(t *testing.T) {
	g := gin.New()
	NewRouter(g, nil)

	w := do(t, g, http.MethodGet, "/api/health/ready", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want 503 when the service is missing", w.Code)
	}
}

func TestLookupEndpoint(t *testing.T) {
	g, f, _ := newTestRouter(t)
	f.add(molcache.ByName("water"), &molcache.Record{CID: 962, Title: ptr("Water")})

	w := do(t, g, http.MethodGet, "/api/v1/compound?namespace=name&identifier=Water", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	resp := decode[coreCompound.LookupResp](t, w)
	if resp.Code != code.Success {
		t.Fatalf("got code %d: %+v", resp.Code, resp.Error)
	}
	if resp.Data.Key != molcache.ByName("water") {
		t.Fatalf("got key %v, want name:water", resp.Data.Key)
	}
	if resp.Data.Cached {
		t.Fatal("first lookup must not be a cache hit")
	}
	if resp.Data.Properties == nil || resp.Data.Properties.CID != 962 {
		t.Fatalf("got properties %+v", resp.Data.Properties)
	}

	again := decode[coreCompound.LookupResp](t, do(t, g, http.MethodGet, "/api/v1/compound?namespace=name&identifier=water", ""))
	if !again.Data.Cached {
		t.Fatal("second lookup must be a cache hit")
	}
}

func TestLookupValidation(t *testing.T) {
	g, _, _ := newTestRouter(t)

	w := do(t, g, http.MethodGet, "/api/v1/compound?namespace=name", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	resp := decode[coreCompound.LookupResp](t, w)
	if resp.Code != code.ParamErr {
		t.Fatalf("got code %d, want %d", resp.Code, code.ParamErr)
	}
	if resp.Error == nil || resp.Error.Msg == "" {
		t.Fatal("expected an error message")
	}
}

func TestLookupErrorCodes(t *testing.T) {
	g, _, _ := newTestRouter(t)

	missing := decode[coreCompound.LookupResp](t, do(t, g, http.MethodGet, "/api/v1/compound?namespace=name&identifier=unobtainium", ""))
	if missing.Code != code.CompoundNotFound {
		t.Fatalf("got code %d, want %d", missing.Code, code.CompoundNotFound)
	}

	badNS := decode[coreCompound.LookupResp](t, do(t, g, http.MethodGet, "/api/v1/compound?namespace=cas&identifier=50-00-0", ""))
	if badNS.Code != code.NamespaceErr {
		t.Fatalf("got code %d, want %d", badNS.Code, code.NamespaceErr)
	}
}

func TestPrefetchEndpoint(t *testing.T) {
	g, f, _ := newTestRouter(t)
	f.add(molcache.ByCID(2244), &molcache.Record{CID: 2244, Title: ptr("Aspirin")})

	body := `{"queries":[{"namespace":"cid","identifier":"2244"},{"namespace":"name","identifier":"unobtainium"}]}`
	w := do(t, g, http.MethodPost, "/api/v1/compound/prefetch", body)
	resp := decode[coreCompound.PrefetchResp](t, w)
	if resp.Code != code.Success {
		t.Fatalf("got code %d: %+v", resp.Code, resp.Error)
	}
	if resp.Data.Fetched != 1 || resp.Data.Skipped != 0 || len(resp.Data.Failed) != 1 {
		t.Fatalf("got %+v, want 1 fetched and 1 failure", resp.Data)
	}

	empty := decode[coreCompound.PrefetchResp](t, do(t, g, http.MethodPost, "/api/v1/compound/prefetch", `{"queries":[]}`))
	if empty.Code != code.ParamErr {
		t.Fatalf("got code %d, want %d for an empty batch", empty.Code, code.ParamErr)
	}
}

func TestCacheEndpoints(t *testing.T) {
	g, f, path := newTestRouter(t)
	f.add(molcache.ByName("water"), &molcache.Record{CID: 962, Title: ptr("Water")})
	f.add(molcache.ByCID(2244), &molcache.Record{CID: 2244, Title: ptr("Aspirin")})

	for _, target := range []string{
		"/api/v1/compound?namespace=name&identifier=water",
		"/api/v1/compound?namespace=cid&identifier=2244",
	} {
		if resp := decode[coreCompound.LookupResp](t, do(t, g, http.MethodGet, target, "")); resp.Code != code.Success {
			t.Fatalf("warm lookup %s failed: %+v", target, resp.Error)
		}
	}

	entries := decode[common.PageResp[[]*coreCompound.EntryItem]](t, do(t, g, http.MethodGet, "/api/v1/cache", ""))
	if entries.Data.Total != 2 || len(entries.Data.Data) != 2 {
		t.Fatalf("got %+v, want 2 entries", entries.Data)
	}

	filtered := decode[common.PageResp[[]*coreCompound.EntryItem]](t, do(t, g, http.MethodGet, "/api/v1/cache?namespace=name", ""))
	if filtered.Data.Total != 1 {
		t.Fatalf("got filtered total %d, want 1", filtered.Data.Total)
	}

	stats := decode[coreCompound.StatsResp](t, do(t, g, http.MethodGet, "/api/v1/cache/stats", ""))
	if stats.Data.Entries != 2 || stats.Data.Namespaces["name"] != 1 {
		t.Fatalf("got stats %+v", stats.Data)
	}

	evicted := decode[coreCompound.EvictResp](t, do(t, g, http.MethodDelete, "/api/v1/cache/entry?namespace=name&identifier=water", ""))
	if evicted.Code != code.Success || !evicted.Data.Removed {
		t.Fatalf("got %+v, want a removed entry", evicted)
	}

	flush := decode[struct{}](t, do(t, g, http.MethodPost, "/api/v1/cache/flush", ""))
	if flush.Code != code.Success {
		t.Fatalf("got code %d: %+v", flush.Code, flush.Error)
	}

	cache, err := molcache.Load(path)
	if err != nil {
		t.Fatalf("load flushed cache: %v", err)
	}
	if _, ok := cache.Get(molcache.ByCID(2244)); !ok {
		t.Fatal("flushed cache is missing cid:2244")
	}
	if _, ok := cache.Get(molcache.ByName("water")); ok {
		t.Fatal("flushed cache still holds the evicted entry")
	}
}
