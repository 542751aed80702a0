package types

import "encoding/binary"

const (
	// ModuleName defines the module name
	ModuleName = "rewards"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// MemStoreKey defines the in-memory store key
	MemStoreKey = "mem_rewards"
)

// KVStore key prefixes
var (
	ParamsKey             = []byte{0x01}
	EmissionStateKey      = []byte{0x02}
	DistributionKeyPrefix = []byte{0x03}
	ClaimKeyPrefix        = []byte{0x04}
	LatestDistributionKey = []byte{0x05}
)

// DistributionKey returns the store key for a distribution
func DistributionKey(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return append(DistributionKeyPrefix, bz...)
}

// ClaimKey returns the store key for a (distribution, claimant) claim flag
func ClaimKey(id uint64, claimant string) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	key := append(ClaimKeyPrefix, bz...)
	return append(key, []byte(claimant)...)
}
