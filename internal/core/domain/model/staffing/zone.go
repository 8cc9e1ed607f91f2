package staffing

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

var (
	// ErrZoneIsNotConstructed is returned when a Zone bypassed its constructor.
	ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

	// ErrTableIsNotConstructed is returned when a Table bypassed its constructor.
	ErrTableIsNotConstructed = errors.New("Table must be created via NewTable constructor")
)

// Zone is a physical subdivision of an event floor. Tables and station-role
// assignments reference a zone; the zone itself has no owner beyond the event.
type Zone struct {
	id       kernel.UUID
	tenantID kernel.UUID
	eventID  kernel.UUID
	name     string

	guard guard.ConstructorGuard
}

// NewZone creates a zone within an event.
func NewZone(id, tenantID, eventID kernel.UUID, name string) (*Zone, error) {
	z := &Zone{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&z.id, id),
		validateID(&z.tenantID, tenantID),
		validateID(&z.eventID, eventID),
	); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return z, nil
}

// Validate ensures the zone was created through its constructor.
func (z *Zone) Validate() error {
	if z == nil {
		return ErrZoneIsNotConstructed
	}
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// ID returns the zone identifier.
func (z *Zone) ID() kernel.UUID { return z.id }

// TenantID returns the owning tenant.
func (z *Zone) TenantID() kernel.UUID { return z.tenantID }

// EventID returns the event this zone belongs to.
func (z *Zone) EventID() kernel.UUID { return z.eventID }

// Name returns the display name of the zone.
func (z *Zone) Name() string { return z.name }

// Table is a guest table located in exactly one zone. Orders reference tables
// by ID; the station queue resolves zone scope through this reference.
type Table struct {
	id       kernel.UUID
	tenantID kernel.UUID
	eventID  kernel.UUID
	zoneID   kernel.UUID
	number   int

	guard guard.ConstructorGuard
}

// NewTable creates a table within a zone.
func NewTable(id, tenantID, eventID, zoneID kernel.UUID, number int) (*Table, error) {
	t := &Table{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&t.id, id),
		validateID(&t.tenantID, tenantID),
		validateID(&t.eventID, eventID),
		validateID(&t.zoneID, zoneID),
	); err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("number", number, 1, 9999)
	}

	t.number = number
	return t, nil
}

// Validate ensures the table was created through its constructor.
func (t *Table) Validate() error {
	if t == nil {
		return ErrTableIsNotConstructed
	}
	return t.guard.Validate(ErrTableIsNotConstructed)
}

// ID returns the table identifier.
func (t *Table) ID() kernel.UUID { return t.id }

// TenantID returns the owning tenant.
func (t *Table) TenantID() kernel.UUID { return t.tenantID }

// EventID returns the event this table belongs to.
func (t *Table) EventID() kernel.UUID { return t.eventID }

// ZoneID returns the zone the table stands in.
func (t *Table) ZoneID() kernel.UUID { return t.zoneID }

// Number returns the guest-visible table number.
func (t *Table) Number() int { return t.number }

func validateID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}
