package worldmap

import "context"

// BuildResult is delivered exactly once, on Done, when a Theme finishes
// (successfully or not).
type BuildResult struct {
	Map *Map
	Err error
}

// MapBuilder drives a Theme's construction on its own goroutine so a
// long-running generator never blocks the world's tick loop. Progress
// snapshots are published as they're produced; Snapshots is buffered to
// exactly one slot and overwrites rather than blocks, so a slow consumer
// only ever sees the latest progress, never a backlog (spec.md 4.4:
// "stream partial snapshots during their build without blocking the
// scheduler").
type MapBuilder struct {
	snapshots chan *Map
	done      chan BuildResult
}

// Build starts theme's construction in the background and returns
// immediately.
func Build(ctx context.Context, theme Theme) *MapBuilder {
	b := &MapBuilder{
		snapshots: make(chan *Map, 1),
		done:      make(chan BuildResult, 1),
	}

	go func() {
		m, err := theme.Build(ctx, func(partial *Map) {
			select {
			case b.snapshots <- partial:
			default:
				select {
				case <-b.snapshots:
				default:
				}
				select {
				case b.snapshots <- partial:
				default:
				}
			}
		})
		b.done <- BuildResult{Map: m, Err: err}
		close(b.done)
	}()

	return b
}

// Snapshots yields partial maps as the theme builds. It never closes;
// callers should select on it alongside Done.
func (b *MapBuilder) Snapshots() <-chan *Map {
	return b.snapshots
}

// Done yields exactly one BuildResult when construction finishes, then
// closes.
func (b *MapBuilder) Done() <-chan BuildResult {
	return b.done
}
