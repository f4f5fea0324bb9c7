package loader

import "context"

// Loader makes named spec modules available before a run starts
type Loader interface {
	// Load makes every target available and then calls done exactly once.
	// done is never called when any target fails to load. done may run on
	// another goroutine, before or after Load returns; a Load that returns
	// nil must still call done eventually or the caller waits for ctx.
	Load(ctx context.Context, targets []string, done func()) error
}

// Progress receives load counts as targets complete
type Progress interface {
	Update(loaded, failed int)
	Finish()
}
