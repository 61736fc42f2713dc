package sweeper

import (
	"context"
)

// Sweeper is a long-running background job that repeats a maintenance cycle
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start runs cycles until ctx is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop asks the loop to exit and waits for the current cycle, bounded by ctx
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
