package types

import (
	"crypto/sha256"
	"encoding/binary"
)

// CommitmentHashSize is the required commitment digest length.
const CommitmentHashSize = sha256.Size

// ComputeProposalHash computes the commitment hash over a proposal payload.
// Hash = SHA256(len(jobIDs) || jobIDs... || len(workers) || (len(w) || w || capacity)... ||
// len(removals) || (len(r) || r)... || timestamp)
//
// Every variable-length field is length-prefixed so distinct payloads can
// never encode to the same byte stream. Voters only ever see this digest;
// the executor must reveal a payload that reproduces it bit for bit.
func ComputeProposalHash(p ProposalPayload) []byte {
	h := sha256.New()
	buf := make([]byte, 8)

	writeUint := func(v uint64) {
		binary.BigEndian.PutUint64(buf, v)
		h.Write(buf)
	}
	writeString := func(s string) {
		writeUint(uint64(len(s)))
		h.Write([]byte(s))
	}

	writeUint(uint64(len(p.JobIDs)))
	for _, id := range p.JobIDs {
		writeUint(id)
	}

	writeUint(uint64(len(p.Workers)))
	for i, w := range p.Workers {
		writeString(w)
		writeUint(p.Capacities[i])
	}

	writeUint(uint64(len(p.RemoveValidators)))
	for _, r := range p.RemoveValidators {
		writeString(r)
	}

	writeUint(uint64(p.Timestamp))

	return h.Sum(nil)
}
