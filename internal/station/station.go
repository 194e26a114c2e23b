package station

import "context"

// CodeResolver maps a user supplied station identifier onto an NS station code.
// ok is false when the identifier could not be resolved; that is not an error.
type CodeResolver interface {
	Resolve(ctx context.Context, identifier, apiKey string) (code string, ok bool, err error)
}
