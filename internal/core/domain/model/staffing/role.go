// Package staffing models who may act where: event zones and their tables,
// the role enumeration with its fixed role-to-station mapping, the zone-role
// assignment binding a station actor to exactly one zone, and the resolved
// caller scope every use case consults.
package staffing

import (
	"fmt"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// Role is the function a user performs at an event.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleWaiter         Role = "waiter"
	RoleCashier        Role = "cashier"
	RoleDrinkDispenser Role = "drink_dispenser"
	RoleMealDispenser  Role = "meal_dispenser"
	RoleMixologist     Role = "mixologist"
	RoleBarStaff       Role = "bar_staff"
)

// roleStations is the fixed role-to-station mapping, decided once here.
// Screens and queries never maintain their own copy.
func roleStations() map[Role]order.StationType {
	return map[Role]order.StationType{
		RoleDrinkDispenser: order.StationDrinkDispenser,
		RoleMealDispenser:  order.StationMealDispenser,
		RoleMixologist:     order.StationMixologist,
		RoleBarStaff:       order.StationBar,
	}
}

// Validate checks the role against the closed set of roles.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleWaiter, RoleCashier,
		RoleDrinkDispenser, RoleMealDispenser, RoleMixologist, RoleBarStaff:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// String returns the wire/persistence name of the role.
func (r Role) String() string {
	return string(r)
}

// IsStationRole reports whether the role is bound to a preparation station.
// Waiters, cashiers, and admins are not station roles and never receive zone
// bindings.
func (r Role) IsStationRole() bool {
	_, ok := roleStations()[r]
	return ok
}

// StationType resolves the station a station role serves. Non-station roles
// get a scope error: they have no station queue to look at.
func (r Role) StationType() (order.StationType, error) {
	station, ok := roleStations()[r]
	if !ok {
		return "", errs.NewScopeErrorWithCause("station queue",
			fmt.Errorf("role %q is not bound to a station", string(r)))
	}
	return station, nil
}
