package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// merkleLevels builds a Merkle tree bottom-up over the ordered chunk hashes
// and returns every non-leaf level's hashes in build order, root last.
//
// Adjacent nodes are pairwise hashed at each level; when a level has odd
// cardinality the last node is duplicated.
func merkleLevels(hashes []string) []string {
	if len(hashes) == 0 {
		return nil
	}

	var levels []string
	current := hashes
	for len(current) > 1 {
		next := make([]string, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			left := current[i]
			right := left
			if i+1 < len(current) {
				right = current[i+1]
			}
			next = append(next, combineHashes(left, right))
		}
		levels = append(levels, next...)
		current = next
	}

	if levels == nil {
		// Single chunk: the tree root is the chunk hash itself.
		levels = []string{hashes[0]}
	}

	return levels
}

// verifyMerkleLevels recomputes the tree from the chunk hashes and compares
// it against the recorded levels.
func verifyMerkleLevels(hashes, recorded []string) bool {
	computed := merkleLevels(hashes)
	if len(computed) != len(recorded) {
		return false
	}
	for i := range computed {
		if computed[i] != recorded[i] {
			return false
		}
	}
	return true
}

// combineHashes hashes the concatenation of two hex node hashes.
func combineHashes(left, right string) string {
	sum := sha256.Sum256([]byte(left + right))
	return hex.EncodeToString(sum[:])
}
