package sweeper

import (
	"context"
)

// Sweeper is a long-running loop that starts sync cycles on a schedule
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start runs the loop until ctx is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop ends the loop and waits for an in-flight check, bounded by ctx
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
