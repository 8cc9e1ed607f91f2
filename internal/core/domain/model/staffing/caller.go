package staffing

import (
	"errors"
	"fmt"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrCallerIsNotConstructed is returned when a Caller bypassed its constructor.
var ErrCallerIsNotConstructed = errors.New("Caller must be created via NewCaller constructor")

// Caller is the resolved scope of an authenticated request: who acts, for
// which tenant, in which role, and — for station roles — in which zones.
// Scope checks fail closed: a station caller with no zone bindings is denied,
// never shown an unfiltered view.
type Caller struct {
	userID   kernel.UUID
	tenantID kernel.UUID
	role     Role
	zoneIDs  []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCaller builds a caller scope. zoneIDs carries the zone bindings of a
// station role and is ignored for roles that see every zone.
func NewCaller(userID, tenantID kernel.UUID, role Role, zoneIDs []kernel.UUID) (Caller, error) {
	c := Caller{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&c.userID, userID),
		validateID(&c.tenantID, tenantID),
		role.Validate(),
	); err != nil {
		return Caller{}, err
	}
	c.role = role

	for _, zoneID := range zoneIDs {
		if err := zoneID.Validate(); err != nil {
			return Caller{}, errs.NewValueIsInvalidErrorWithCause("zoneIDs", err)
		}
		c.zoneIDs = append(c.zoneIDs, zoneID)
	}

	return c, nil
}

// Validate ensures the caller was created through its constructor.
func (c Caller) Validate() error {
	return c.guard.Validate(ErrCallerIsNotConstructed)
}

// UserID returns the acting user.
func (c Caller) UserID() kernel.UUID { return c.userID }

// TenantID returns the tenant the caller acts for.
func (c Caller) TenantID() kernel.UUID { return c.tenantID }

// Role returns the caller's role.
func (c Caller) Role() Role { return c.role }

// ZoneIDs returns the zone bindings of a station caller. Empty for
// non-station roles and for station callers nobody has assigned yet.
func (c Caller) ZoneIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.zoneIDs...)
}

// SeesAllZones reports whether the caller's role is exempt from zone scoping.
func (c Caller) SeesAllZones() bool {
	return !c.role.IsStationRole()
}

// CanActInZone reports whether the caller may act on work located in zoneID.
// Non-station roles always can; station roles only within their bindings.
func (c Caller) CanActInZone(zoneID kernel.UUID) bool {
	if c.SeesAllZones() {
		return true
	}
	for _, bound := range c.zoneIDs {
		if bound.IsEqual(zoneID) {
			return true
		}
	}
	return false
}

// RequireZone returns a scope error unless the caller may act in zoneID.
func (c Caller) RequireZone(zoneID kernel.UUID) error {
	if c.CanActInZone(zoneID) {
		return nil
	}
	return errs.NewScopeErrorWithCause("zone",
		fmt.Errorf("user %s (role %s) is not assigned to zone %s",
			c.userID, c.role, zoneID))
}

// RequireTenant returns a scope error unless the resource belongs to the
// caller's tenant. Cross-tenant access is reported as denial, not absence,
// at this layer; handlers decide how much to reveal.
func (c Caller) RequireTenant(tenantID kernel.UUID) error {
	if c.tenantID.IsEqual(tenantID) {
		return nil
	}
	return errs.NewScopeErrorWithCause("tenant",
		fmt.Errorf("user %s does not belong to tenant %s", c.userID, tenantID))
}

// RequireRole returns a scope error unless the caller holds one of the
// allowed roles.
func (c Caller) RequireRole(allowed ...Role) error {
	for _, role := range allowed {
		if c.role == role {
			return nil
		}
	}
	return errs.NewScopeErrorWithCause("role",
		fmt.Errorf("role %s may not perform this operation", c.role))
}
