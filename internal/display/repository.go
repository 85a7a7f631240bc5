package display

import "context"

// Repository is the single read-modify-write interface all state mutation
// funnels through. Reads return empty defaults when nothing is stored.
type Repository interface {
	LoadState(ctx context.Context) (*State, error)
	SaveState(ctx context.Context, s *State) error

	LoadMailState(ctx context.Context) (*MailState, error)
	SaveMailState(ctx context.Context, m *MailState) error
}
