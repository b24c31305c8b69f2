package service

import "context"

// Component is a long-running piece of the process with a start/stop
// lifecycle, such as the membership watcher that keeps the ring in sync
// with the config file.  Open starts any background work; Close stops it
// and waits for it to finish.
type Component interface {
	Open(ctx context.Context) error
	Close() error
}
