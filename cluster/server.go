package cluster

import (
	"fmt"
	"strings"
)

// ServerDescriptor is one node's host:port identity within a generation.
// Descriptors are immutable once stored.
type ServerDescriptor struct {
	HostPort string
}

// parseServer parses one server-list entry.  An entry may carry a
// "-"-delimited suffix, e.g. "10.0.0.1:11211-group0"; only the portion
// before the first dash names the server.  The descriptor stores the
// truncated host:port so ring points and self identity are computed over
// the bare address no matter how the entry was decorated.
func parseServer(entry string) (ServerDescriptor, error) {
	hostport, _, _ := strings.Cut(entry, "-")
	if hostport == "" {
		return ServerDescriptor{}, fmt.Errorf("malformed server entry %q", entry)
	}
	return ServerDescriptor{HostPort: hostport}, nil
}
