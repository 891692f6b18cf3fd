package pagination

import "Murmur/internal/core/apperr"

const (
	DefaultSkip = 0
	DefaultTake = 20
	MaxTake     = 100
)

var (
	ErrInvalidSkip = apperr.BadRequest("skip must be >= 0")
	ErrInvalidTake = apperr.BadRequest("take must be between 1 and 100")
)

// Page is a validated offset window over an ordered listing
type Page struct {
	Skip int
	Take int
}

// Validate checks the offset window shared by every paginated listing
func Validate(skip, take int) error {
	if skip < 0 {
		return ErrInvalidSkip
	}
	if take < 1 || take > MaxTake {
		return ErrInvalidTake
	}
	return nil
}

// New validates skip/take and returns the page they describe
func New(skip, take int) (Page, error) {
	if err := Validate(skip, take); err != nil {
		return Page{}, err
	}
	return Page{Skip: skip, Take: take}, nil
}
