package cluster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseServer(t *testing.T) {
	tests := []struct {
		entry    string
		hostport string
		wantErr  bool
	}{
		{entry: "10.0.0.1:11211", hostport: "10.0.0.1:11211"},
		{entry: "10.0.0.1:11211-group0", hostport: "10.0.0.1:11211"},
		{entry: "10.0.0.1:11211-a-b-c", hostport: "10.0.0.1:11211"},
		{entry: "cache-host:11211", hostport: "cache"},
		{entry: "", wantErr: true},
		{entry: "-suffix", wantErr: true},
		{entry: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			s, err := parseServer(tt.entry)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.hostport, s.HostPort)
		})
	}
}
