package flake

import (
	"strconv"
	"sync"
	"time"

	"github.com/davidnarayan/go-flake"
)

var (
	mu    sync.Mutex
	idgen *flake.Flake
)

// NextID returns a new flake ID as a hex string.  IDs are unique within the
// process and sort lexicographically by creation time.
func NextID() (string, error) {
	mu.Lock()
	defer mu.Unlock()

	if idgen == nil {
		gen, err := flake.New()
		if err != nil {
			return "", err
		}
		idgen = gen
	}
	id := idgen.NextId()
	return id.String(), nil
}

// ParseFlakeID returns the creation time encoded in a flake ID.
func ParseFlakeID(id string) (time.Time, error) {
	num, err := strconv.ParseInt(id, 16, 64)
	if err != nil {
		return time.Time{}, err
	}

	seq := num & 0xFFFF

	num = num >> (flake.HostBits + flake.SequenceBits)
	createdAt := flake.Epoch.Add(time.Duration(num) * time.Millisecond).Add(time.Duration(seq) * time.Nanosecond)

	return createdAt, nil
}
