package customizer

import "context"

type SessionRepository interface {
	Save(ctx context.Context, s *Session) error
	// Find returns nil, nil when the session does not exist or has expired.
	Find(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
