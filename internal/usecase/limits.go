package usecase

import (
	"fmt"

	"github.com/bluepin/backend/internal/domain"
)

// MaxResultLimit caps every top-N request
const MaxResultLimit = 100

// resolveLimit applies the default for zero, caps large values and rejects negatives
func resolveLimit(limit, def int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidRequest)
	case limit == 0:
		return def, nil
	case limit > MaxResultLimit:
		return MaxResultLimit, nil
	default:
		return limit, nil
	}
}
