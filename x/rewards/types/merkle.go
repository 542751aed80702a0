package types

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Merkle node domain tags. Leaves and interior nodes hash under
// different prefixes so a proof cannot present one as the other.
const (
	leafPrefix     = byte(0x00)
	interiorPrefix = byte(0x01)
)

// MerkleRootSize is the required root digest length.
const MerkleRootSize = sha256.Size

// ClaimLeaf hashes one (claimant, capacity) pair bound to a distribution
// nonce. Both the ledger and the proposal state machine must use this
// exact encoding for roots and proofs to line up.
func ClaimLeaf(claimant string, capacity uint64, nonce uint64) []byte {
	h := sha256.New()
	h.Write([]byte{leafPrefix})

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(len(claimant)))
	h.Write(buf)
	h.Write([]byte(claimant))

	binary.BigEndian.PutUint64(buf, capacity)
	h.Write(buf)

	binary.BigEndian.PutUint64(buf, nonce)
	h.Write(buf)

	return h.Sum(nil)
}

// hashPair hashes two sibling nodes in byte-sorted order, so a verifier
// does not need to know which side each sibling was on.
func hashPair(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	h := sha256.New()
	h.Write([]byte{interiorPrefix})
	h.Write(a)
	h.Write(b)
	return h.Sum(nil)
}

// BuildMerkleRoot folds the given leaves into a root. An odd node at any
// level is promoted unchanged. Returns an error for an empty leaf set.
func BuildMerkleRoot(leaves [][]byte) ([]byte, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("cannot build a merkle root over zero leaves")
	}

	level := make([][]byte, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashPair(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}

	return level[0], nil
}

// BuildMerkleProof returns the sibling path for the leaf at index within
// the given leaf set.
func BuildMerkleProof(leaves [][]byte, index int) ([][]byte, error) {
	if index < 0 || index >= len(leaves) {
		return nil, fmt.Errorf("leaf index %d out of range [0, %d)", index, len(leaves))
	}

	level := make([][]byte, len(leaves))
	copy(level, leaves)

	var proof [][]byte
	for len(level) > 1 {
		sibling := index ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}

		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashPair(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
		index /= 2
	}

	return proof, nil
}

// VerifyMerkleProof folds a leaf up through the sibling path and reports
// whether it lands on the expected root.
func VerifyMerkleProof(root, leaf []byte, proof [][]byte) bool {
	if len(root) != MerkleRootSize {
		return false
	}

	computed := leaf
	for _, sibling := range proof {
		if len(sibling) != MerkleRootSize {
			return false
		}
		computed = hashPair(computed, sibling)
	}

	return bytes.Equal(computed, root)
}

// BuildClaimRoot is a convenience combining ClaimLeaf and BuildMerkleRoot
// over parallel worker/capacity slices.
func BuildClaimRoot(workers []string, capacities []uint64, nonce uint64) ([]byte, error) {
	if len(workers) != len(capacities) {
		return nil, fmt.Errorf("workers and capacities length mismatch: %d != %d", len(workers), len(capacities))
	}
	leaves := make([][]byte, len(workers))
	for i, w := range workers {
		leaves[i] = ClaimLeaf(w, capacities[i], nonce)
	}
	return BuildMerkleRoot(leaves)
}
