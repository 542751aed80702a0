package types

import "encoding/binary"

const (
	// ModuleName defines the module name
	ModuleName = "committee"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// MemStoreKey defines the in-memory store key
	MemStoreKey = "mem_committee"
)

// KVStore key prefixes
var (
	ParamsKey          = []byte{0x01}
	RegistryKey        = []byte{0x02}
	RoundKey           = []byte{0x03}
	ValidatorKeyPrefix = []byte{0x04}
	ProposalKeyPrefix  = []byte{0x05}
	VoteKeyPrefix      = []byte{0x06}
	CreatorKeyPrefix   = []byte{0x07}
	NextProposalIDKey  = []byte{0x08}
)

// ValidatorKey returns the store key for a validator record
func ValidatorKey(addr string) []byte {
	return append(ValidatorKeyPrefix, []byte(addr)...)
}

// ProposalKey returns the store key for a proposal
func ProposalKey(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return append(ProposalKeyPrefix, bz...)
}

// VoteKey returns the store key for a validator's vote in the current round
func VoteKey(voter string) []byte {
	return append(VoteKeyPrefix, []byte(voter)...)
}

// CreatorKey returns the index key mapping a creator to its open proposal
func CreatorKey(creator string) []byte {
	return append(CreatorKeyPrefix, []byte(creator)...)
}
