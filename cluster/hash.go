package cluster

import (
	"crypto/md5"
	"encoding/binary"
)

const (
	// 40 hashes, 4 points per hash = 160 points per server.
	hashesPerServer = 40
	pointsPerHash   = 4

	// PointsPerServer is the number of continuum points placed for each
	// server in a generation.
	PointsPerServer = hashesPerServer * pointsPerHash
)

// ringPoint maps a key onto the 32-bit ketama ring.  The point is the first
// four bytes of the key's MD5 digest assembled little-endian.  The digest
// and byte order are a compatibility contract with libketama and the arcus
// client libraries that compute the same ring independently, so both are
// fixed.
func ringPoint(key []byte) uint32 {
	digest := md5.Sum(key)
	return binary.LittleEndian.Uint32(digest[:4])
}
