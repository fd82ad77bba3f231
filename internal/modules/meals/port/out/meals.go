package out

import (
	"context"

	"mealsync/internal/modules/meals/domain"
)

type CredentialSource interface {
	Resolve(ctx context.Context) (domain.Credentials, error)
}

type MenuAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.Session, error)
	FetchMenu(ctx context.Context, session domain.Session, date string) (domain.Payload, error)
}

// PayloadSink replaces a whole file with the payload.
type PayloadSink interface {
	Write(ctx context.Context, payload domain.Payload) error
	Target() string
}

// DocumentSplicer rewrites the payload region of an existing document.
// Missing markers yield false and an error wrapping ErrMarkerNotFound.
type DocumentSplicer interface {
	Update(ctx context.Context, payload domain.Payload) (bool, error)
	Target() string
}

// Reporter receives human-readable progress.
type Reporter interface {
	Step(msg string)
	Done(msg string)
	Warn(msg string)
}
