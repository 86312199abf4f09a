package molcache

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func testCache() *Cache {
	c := New()
	c.Insert(ByName("carbon dioxide"), &Record{
		CID:              280,
		Title:            ptr("Carbon Dioxide"),
		MolecularFormula: ptr("CO2"),
		MolecularWeight:  ptr("44.009"),
		CanonicalSMILES:  ptr("C(=O)=O"),
		InChI:            ptr("InChI=1S/CO2/c2-1-3"),
		InChIKey:         ptr("CURSGNESNSBTY-UHFFFAOYSA-N"),
		Charge:           ptr(int32(0)),
		HeavyAtomCount:   ptr(int32(3)),
		TPSA:             ptr(34.1),
		XLogP:            ptr(0.9),
	})
	c.Insert(ByCID(962), waterRecord())
	c.Insert(BySMILES("CCO"), &Record{CID: 702, Title: ptr("Ethanol")})
	return c
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compounds.json")
	c := testCache()

	if err := c.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded.entries, c.entries) {
		t.Fatalf("loaded cache differs:\ngot  %+v\nwant %+v", loaded.entries, c.entries)
	}
}

func TestSaveIsDeterministic(t *testing.T) {
	a := New()
	a.Insert(ByName("water"), waterRecord())
	a.Insert(ByCID(280), &Record{CID: 280})
	a.Insert(BySMILES("CCO"), &Record{CID: 702})

	b := New()
	b.Insert(BySMILES("CCO"), &Record{CID: 702})
	b.Insert(ByCID(280), &Record{CID: 280})
	b.Insert(ByName("water"), waterRecord())

	var bufA, bufB bytes.Buffer
	if err := a.Encode(&bufA); err != nil {
		t.Fatalf("encode a: %v", err)
	}
	if err := b.Encode(&bufB); err != nil {
		t.Fatalf("encode b: %v", err)
	}
	if !bytes.Equal(bufA.Bytes(), bufB.Bytes()) {
		t.Fatal("insertion order leaked into the encoded bytes")
	}
}

func TestSaveLoadSaveIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	c := testCache()
	if err := c.Save(first); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(first)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := loaded.Save(second); err != nil {
		t.Fatalf("save again: %v", err)
	}

	want, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	got, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("save/load/save changed bytes:\ngot  %s\nwant %s", got, want)
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "compounds.json")
	if err := testCache().Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat saved file: %v", err)
	}
}

func TestEmptyCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := New().Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.IsEmpty() {
		t.Fatalf("got %d entries, want 0", loaded.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such-file.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	var ferr *FormatError
	if errors.As(err, &ferr) {
		t.Fatalf("missing file must not be a format error, got %v", ferr)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"version": 1, "cache": [`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := Load(path)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
	if ferr.Entry != -1 {
		t.Fatalf("got entry %d, want -1", ferr.Entry)
	}
}

func TestLoadRejectsOtherVersions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"newer version", `{"version": 2, "cache": []}`},
		{"missing version", `{"cache": []}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.body))
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("expected *FormatError, got %v", err)
			}
			if !strings.Contains(ferr.Error(), "version") {
				t.Fatalf("error %q does not mention the version", ferr)
			}
		})
	}
}

func TestLoadReportsOffendingEntry(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "missing namespace",
			body: `{"version": 1, "cache": [{"identifier": "water", "properties": {"cid": 962}}]}`,
			want: 0,
		},
		{
			name: "missing identifier",
			body: `{"version": 1, "cache": [{"namespace": "cid", "identifier": "280", "properties": {"cid": 280}}, {"namespace": "name", "properties": {"cid": 962}}]}`,
			want: 1,
		},
		{
			name: "wrong property type",
			body: `{"version": 1, "cache": [{"namespace": "name", "identifier": "water", "properties": {"cid": "not-a-number"}}]}`,
			want: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.body))
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("expected *FormatError, got %v", err)
			}
			if ferr.Entry != tc.want {
				t.Fatalf("got entry %d, want %d", ferr.Entry, tc.want)
			}
		})
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	body := `{
  "version": 1,
  "future_flag": true,
  "cache": [
    {
      "namespace": "name",
      "identifier": "water",
      "properties": {"cid": 962, "title": "Water", "melting_point": -0.001},
      "annotation": "added by a newer build"
    }
  ]
}`
	c, err := Decode(strings.NewReader(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rec, ok := c.Get(ByName("water"))
	if !ok {
		t.Fatal("expected the entry to load")
	}
	if rec.CID != 962 || rec.Title == nil || *rec.Title != "Water" {
		t.Fatalf("got %+v, want cid 962 title Water", rec)
	}
}

func TestDecodeNullPropertiesBecomesEmptyRecord(t *testing.T) {
	body := `{"version": 1, "cache": [{"namespace": "name", "identifier": "pending", "properties": null}]}`
	c, err := Decode(strings.NewReader(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rec, ok := c.Get(ByName("pending"))
	if !ok {
		t.Fatal("expected a hit")
	}
	if !reflect.DeepEqual(rec, &Record{}) {
		t.Fatalf("got %+v, want empty record", rec)
	}
}

func TestLoadKeepsKeysVerbatim(t *testing.T) {
	body := `{"version": 1, "cache": [{"namespace": "name", "identifier": "Water", "properties": {"cid": 962}}]}`
	c, err := Decode(strings.NewReader(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := c.Get(Key{Namespace: NamespaceName, Identifier: "Water"}); !ok {
		t.Fatal("persisted key must stay addressable exactly as written")
	}
	if _, ok := c.Get(ByName("Water")); ok {
		t.Fatal("load must not re-normalize persisted identifiers")
	}
}

func TestLoadErrorNamesThePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compounds.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "compounds.json") {
		t.Fatalf("error %v does not name the file", err)
	}
}
