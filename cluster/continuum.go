package cluster

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cachefleet/ketama/pkg/pool"
)

var bytesPool = pool.NewBytes(1024)

// continuumPoint is one position on the ring and the index of the server
// that owns it.  The index refers into the server list of the generation
// the point belongs to.
type continuumPoint struct {
	point uint32
	index uint32
}

// buildContinuum places PointsPerServer points on the ring for each server:
// 40 rounds of MD5 over "<hostport>-<round>", each digest sliced into 4
// consecutive little-endian uint32 points.  The result is sorted ascending
// by point.  Ties carry no ordering guarantee between servers.
func buildContinuum(servers []ServerDescriptor) []continuumPoint {
	continuum := make([]continuumPoint, 0, len(servers)*PointsPerServer)

	b := bytesPool.Get(64)
	defer bytesPool.Put(b)

	for i, s := range servers {
		for round := 0; round < hashesPerServer; round++ {
			b = fmt.Appendf(b[:0], "%s-%d", s.HostPort, round)
			digest := md5.Sum(b)

			for n := 0; n < pointsPerHash; n++ {
				continuum = append(continuum, continuumPoint{
					point: binary.LittleEndian.Uint32(digest[n*4:]),
					index: uint32(i),
				})
			}
		}
	}

	sort.Slice(continuum, func(i, j int) bool {
		return continuum[i].point < continuum[j].point
	})

	return continuum
}
