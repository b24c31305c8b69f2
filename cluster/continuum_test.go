package cluster

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func testServers(n int) []ServerDescriptor {
	servers := make([]ServerDescriptor, 0, n)
	for i := 0; i < n; i++ {
		servers = append(servers, ServerDescriptor{HostPort: fmt.Sprintf("10.0.0.%d:11211", i+1)})
	}
	return servers
}

func TestBuildContinuum(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10} {
		t.Run(fmt.Sprintf("%d servers", n), func(t *testing.T) {
			servers := testServers(n)
			continuum := buildContinuum(servers)

			require.Equal(t, n*PointsPerServer, len(continuum))
			require.True(t, sort.SliceIsSorted(continuum, func(i, j int) bool {
				return continuum[i].point < continuum[j].point
			}))

			// Every server contributes exactly PointsPerServer points.
			counts := make(map[uint32]int)
			for _, p := range continuum {
				require.Less(t, p.index, uint32(n))
				counts[p.index]++
			}
			for i := 0; i < n; i++ {
				require.Equal(t, PointsPerServer, counts[uint32(i)])
			}
		})
	}
}

func TestBuildContinuum_Deterministic(t *testing.T) {
	servers := testServers(4)
	a := buildContinuum(servers)
	b := buildContinuum(servers)
	require.Equal(t, a, b)
}

func TestBuildContinuum_Empty(t *testing.T) {
	require.Empty(t, buildContinuum(nil))
}
