package usecase

import (
	"fmt"

	"NFTCast/internal/domain/models"
)

// HorizonPolicy fills in and bounds requested horizons.
type HorizonPolicy struct {
	Default int
	Max     int
}

func DefaultHorizonPolicy() HorizonPolicy { return HorizonPolicy{Default: 5, Max: 24} }

// Resolve maps 0 to the default and rejects values outside [1, Max].
func (h HorizonPolicy) Resolve(requested int) (int, error) {
	if requested == 0 {
		requested = h.Default
	}
	if requested < 1 || (h.Max > 0 && requested > h.Max) {
		return 0, fmt.Errorf("%w: %d (allowed 1..%d)", models.ErrInvalidHorizon, requested, h.Max)
	}
	return requested, nil
}
