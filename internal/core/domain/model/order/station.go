package order

import (
	"fmt"

	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// StationType identifies the preparation point a menu item is routed to.
// It is captured on each order item at creation time from the catalog and
// never changes afterwards.
type StationType string

const (
	// StationDrinkDispenser prepares soft drinks and taps.
	StationDrinkDispenser StationType = "drink_dispenser"

	// StationMealDispenser prepares food items.
	StationMealDispenser StationType = "meal_dispenser"

	// StationMixologist prepares cocktails.
	StationMixologist StationType = "mixologist"

	// StationBar handles walk-up bar sales.
	StationBar StationType = "bar"
)

// Validate checks the station type against the closed set of stations.
func (s StationType) Validate() error {
	switch s {
	case StationDrinkDispenser, StationMealDispenser, StationMixologist, StationBar:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("stationType",
			fmt.Errorf("%q is not a valid station type", string(s)))
	}
}

// String returns the wire/persistence name of the station type.
func (s StationType) String() string {
	return string(s)
}
