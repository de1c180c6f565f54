package errors

import (
	stderrors "errors"

	"github.com/dogfinder/dogfinder/internal/domain"
)

func isStale(err error) bool {
	return stderrors.Is(err, domain.ErrStaleResponse)
}
