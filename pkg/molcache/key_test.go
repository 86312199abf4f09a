package molcache

import "testing"

func TestKeyConstructorsNormalize(t *testing.T) {
	tests := []struct {
		name string
		got  Key
		want Key
	}{
		{
			name: "cid is canonical decimal",
			got:  ByCID(2244),
			want: Key{Namespace: NamespaceCID, Identifier: "2244"},
		},
		{
			name: "name is trimmed and lower-cased",
			got:  ByName("  Carbon Dioxide "),
			want: Key{Namespace: NamespaceName, Identifier: "carbon dioxide"},
		},
		{
			name: "smiles keeps case",
			got:  BySMILES(" C(=O)=O "),
			want: Key{Namespace: NamespaceSMILES, Identifier: "C(=O)=O"},
		},
		{
			name: "inchi keeps case",
			got:  ByInChI("InChI=1S/CO2/c2-1-3"),
			want: Key{Namespace: NamespaceInChI, Identifier: "InChI=1S/CO2/c2-1-3"},
		},
		{
			name: "inchikey is upper-cased",
			got:  ByInChIKey(" cursgnesnSBTy-uhfffaoysa-n "),
			want: Key{Namespace: NamespaceInChIKey, Identifier: "CURSGNESNSBTY-UHFFFAOYSA-N"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestEquivalentQueriesShareAKey(t *testing.T) {
	if ByName("Water") != ByName("water") {
		t.Fatal("expected name keys to be case-insensitive")
	}
	if ByInChIKey("xlyofnoqvpjjnp-uhfffaoysa-n") != ByInChIKey("XLYOFNOQVPJJNP-UHFFFAOYSA-N") {
		t.Fatal("expected inchikey keys to be case-insensitive")
	}
	if BySMILES("c1ccccc1") == BySMILES("C1CCCCC1") {
		t.Fatal("expected smiles keys to be case-sensitive")
	}
}

func TestSameIdentifierDifferentNamespace(t *testing.T) {
	a := NewKey(NamespaceName, "962")
	b := ByCID(962)
	if a == b {
		t.Fatalf("keys %v and %v must not collide", a, b)
	}
}

func TestNewKeyMatchesTypedConstructors(t *testing.T) {
	if got, want := NewKey(NamespaceName, " Aspirin "), ByName("Aspirin"); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got, want := NewKey(NamespaceInChIKey, "bsyNrymupyVXE-uhfffaoysa-n"), ByInChIKey("BSYNRYMUPYVXE-UHFFFAOYSA-N"); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got, want := NewKey(NamespaceSMILES, " CCO "), BySMILES("CCO"); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestKeyString(t *testing.T) {
	if got, want := ByCID(280).String(), "cid:280"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := ByName("Benzene").String(), "name:benzene"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestKeyLess(t *testing.T) {
	if !ByCID(10).Less(ByName("a")) {
		t.Fatal("expected cid namespace to sort before name")
	}
	if !ByName("benzene").Less(ByName("water")) {
		t.Fatal("expected identifiers to order within a namespace")
	}
	if ByName("water").Less(ByName("water")) {
		t.Fatal("Less must be irreflexive")
	}
}

func TestNamespaceValid(t *testing.T) {
	for _, ns := range []Namespace{NamespaceCID, NamespaceName, NamespaceSMILES, NamespaceInChI, NamespaceInChIKey} {
		if !ns.Valid() {
			t.Fatalf("namespace %q should be valid", ns)
		}
	}
	if Namespace("cas").Valid() {
		t.Fatal("unknown namespace reported valid")
	}
}
