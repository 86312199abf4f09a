package molcache

import (
	"fmt"
	"strconv"
	"strings"
)

// Namespace names the PubChem compound index an identifier belongs to.
type Namespace string

const (
	NamespaceCID      Namespace = "cid"
	NamespaceName     Namespace = "name"
	NamespaceSMILES   Namespace = "smiles"
	NamespaceInChI    Namespace = "inchi"
	NamespaceInChIKey Namespace = "inchikey"
)

// Valid reports whether ns is one of the namespaces the remote provider
// can resolve. Persisted files may carry other namespaces; those entries
// stay addressable in the cache but cannot be re-fetched.
func (ns Namespace) Valid() bool {
	switch ns {
	case NamespaceCID, NamespaceName, NamespaceSMILES, NamespaceInChI, NamespaceInChIKey:
		return true
	}
	return false
}

// Key identifies one compound query. Keys built from equivalent queries
// compare equal with == and address the same cache slot. Build keys with
// the typed constructors, which apply the per-namespace normalization
// exactly once:
//
//   - cid: canonical decimal, no sign, no leading zeros
//   - name: trimmed and lower-cased (the remote name index ignores case)
//   - smiles, inchi: trimmed only, both notations are case-significant
//   - inchikey: trimmed and upper-cased (standard keys are upper-case)
type Key struct {
	Namespace  Namespace `json:"namespace"`
	Identifier string    `json:"identifier"`
}

// ByCID builds a key for a PubChem compound ID.
func ByCID(cid uint32) Key {
	return Key{Namespace: NamespaceCID, Identifier: strconv.FormatUint(uint64(cid), 10)}
}

// ByName builds a key for a compound name, such as "carbon dioxide".
func ByName(name string) Key {
	return Key{Namespace: NamespaceName, Identifier: strings.ToLower(strings.TrimSpace(name))}
}

// BySMILES builds a key for a SMILES string.
func BySMILES(smiles string) Key {
	return Key{Namespace: NamespaceSMILES, Identifier: strings.TrimSpace(smiles)}
}

// ByInChI builds a key for an InChI string.
func ByInChI(inchi string) Key {
	return Key{Namespace: NamespaceInChI, Identifier: strings.TrimSpace(inchi)}
}

// ByInChIKey builds a key for an InChIKey.
func ByInChIKey(inchikey string) Key {
	return Key{Namespace: NamespaceInChIKey, Identifier: strings.ToUpper(strings.TrimSpace(inchikey))}
}

// NewKey builds a key from a raw namespace and identifier, applying the
// same normalization as the typed constructors. Identifiers in unknown
// namespaces are only trimmed.
func NewKey(ns Namespace, identifier string) Key {
	switch ns {
	case NamespaceName:
		return ByName(identifier)
	case NamespaceInChIKey:
		return ByInChIKey(identifier)
	default:
		return Key{Namespace: ns, Identifier: strings.TrimSpace(identifier)}
	}
}

// String renders the key as "namespace:identifier".
func (k Key) String() string {
	return fmt.Sprintf("%s:%s", k.Namespace, k.Identifier)
}

// Less orders keys by namespace, then identifier. Listings and persisted
// files use this order so equal cache states serialize identically.
func (k Key) Less(other Key) bool {
	if k.Namespace != other.Namespace {
		return k.Namespace < other.Namespace
	}
	return k.Identifier < other.Identifier
}
