package omdb

import "github.com/dmitrijs2005/moviedb/internal/common"

// ProviderError is any failed provider call: a negative response, a
// transport failure, a non-200 status or an undecodable body.
type ProviderError struct {
	// Message is the provider's own text for negative responses, otherwise
	// a short description of what went wrong.
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, common.ErrProvider) hold for every *ProviderError.
func (e *ProviderError) Is(target error) bool {
	return target == common.ErrProvider
}
