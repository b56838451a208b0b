package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Hash returns the hex SHA-256 of data. Graph documents and settings are
// identified by it in keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// artifactKey is "kind:" followed by the hash of the graph and its options.
func artifactKey(kind Kind, graphHash string, opts any) string {
	data, _ := json.Marshal(struct {
		Graph string `json:"graph"`
		Opts  any    `json:"opts"`
	}{graphHash, opts})
	return string(kind) + ":" + Hash(data)
}

// KindOf recovers the artifact kind from a key built by a Keyer, ignoring
// any scope prefix.
func KindOf(key string) Kind {
	i := strings.LastIndexByte(key, ':')
	if i < 0 || len(key)-i-1 != sha256.Size*2 {
		return KindUnknown
	}
	head := key[:i]
	if j := strings.LastIndexByte(head, ':'); j >= 0 {
		head = head[j+1:]
	}
	switch k := Kind(head); k {
	case KindRender, KindAnalysis:
		return k
	}
	return KindUnknown
}
