package circuit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for content-addressed circuit identity.
// Version suffix enables future algorithm migration.
const domainCircuit = "qglitch/circuit/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ContentHash computes the content-addressed identity of a circuit.
// The hash is stable across restarts: the JSON encoding of a Circuit is
// deterministic (struct fields in declaration order, no map-keyed data),
// and string fields are NFC normalized before hashing so equivalent Unicode
// spellings of a corrupted gate token produce the same identity.
//
// Deliberately-invalid circuits hash fine - identity is syntactic, not
// a validity check.
func ContentHash(c *Circuit) (string, error) {
	normalized := c.Clone()
	for i := range normalized.Gates {
		normalized.Gates[i].Kind = GateKind(norm.NFC.String(string(normalized.Gates[i].Kind)))
		for j, f := range normalized.Gates[i].Flags {
			normalized.Gates[i].Flags[j] = norm.NFC.String(f)
		}
	}
	for i := range normalized.Measurements {
		normalized.Measurements[i].Basis = Basis(norm.NFC.String(string(normalized.Measurements[i].Basis)))
	}

	data, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("content hash: marshal circuit: %w", err)
	}
	return hashWithDomain(domainCircuit, data), nil
}

// MustContentHash is like ContentHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustContentHash(c *Circuit) string {
	h, err := ContentHash(c)
	if err != nil {
		panic(err)
	}
	return h
}
