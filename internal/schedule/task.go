package schedule

import "context"

// Task is a unit of scheduled background work.
type Task interface {
	Run(ctx context.Context) error
	Name() string
}
