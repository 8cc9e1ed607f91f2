// Package staffingrepo maps zones, tables, and zone-role assignments to
// their relational form. The assignments table carries a unique index on
// (tenant, event, zone, role) so a racing duplicate binding fails at the
// database rather than slipping past an application check.
package staffingrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
)

// ZoneDTO is the database row of one service zone.
type ZoneDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
}

// TableName overrides GORM's default naming to use "zones".
func (ZoneDTO) TableName() string {
	return "zones"
}

// TableDTO is the database row of one guest table.
type TableDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ZoneID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Number   int       `gorm:"type:int;not null"`
}

// TableName overrides GORM's default naming to use "tables".
func (TableDTO) TableName() string {
	return "tables"
}

// AssignmentDTO is the database row of one zone-role binding. The unique
// index spans (tenant, event, zone, role) so at most one actor of a
// station role is ever bound to a zone.
type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_binding"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_binding"`
	ZoneID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_binding"`
	Role       string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_assignments_binding"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedAt time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "zone_role_assignments".
func (AssignmentDTO) TableName() string {
	return "zone_role_assignments"
}

func assignmentFromDomain(a *staffing.ZoneRoleAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         a.ID().Bytes(),
		TenantID:   a.TenantID().Bytes(),
		EventID:    a.EventID().Bytes(),
		ZoneID:     a.ZoneID().Bytes(),
		Role:       string(a.Role()),
		UserID:     a.UserID().Bytes(),
		AssignedAt: a.AssignedAt(),
	}
}

func zoneToDomain(dto ZoneDTO) (*staffing.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return nil, err
	}

	return staffing.NewZone(id, tenantID, eventID, dto.Name)
}

func tableToDomain(dto TableDTO) (*staffing.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}

	return staffing.NewTable(id, tenantID, eventID, zoneID, dto.Number)
}
