package snapshot

import "context"

// stateAccess provides common state access for all snapshot repositories.
//
// A repository handed out by the container operates on the live store: reads
// take the read lock and mutations run as their own clone-persist-swap commit.
// Inside a unit of work the repository is instead bound to the in-flight clone
// (state != nil); the unit of work already holds the write lock and persists
// once at the end.
type stateAccess struct {
	store *Store
	state *State
}

func (a stateAccess) view(ctx context.Context, fn func(st *State) error) error {
	if a.state != nil {
		return fn(a.state)
	}
	return a.store.View(ctx, fn)
}

func (a stateAccess) update(ctx context.Context, fn func(st *State) error) error {
	if a.state != nil {
		return fn(a.state)
	}
	return a.store.Update(ctx, fn)
}
