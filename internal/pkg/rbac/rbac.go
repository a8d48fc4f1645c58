// Package rbac holds the static role/permission table consumed by the inbound
// HTTP adapter. Identity resolution itself happens upstream; this package only
// answers "may this role perform this action".
package rbac

// Role identifies the acting principal's role as resolved by the identity
// provider.
type Role string

const (
	RoleOwner            Role = "OWNER"
	RoleOps              Role = "OPS"
	RoleQC               Role = "QC"
	RoleProductionTailor Role = "PRODUCTION_TAILOR"
	RoleFittingTailor    Role = "FITTING_TAILOR"
	RoleSystem           Role = "SYSTEM"
)

// Permission names a guarded operation.
type Permission string

const (
	PermWorkOrdersRead     Permission = "work-orders:read"
	PermWorkOrdersCreate   Permission = "work-orders:create"
	PermWorkOrdersUpdate   Permission = "work-orders:update"
	PermMeasurementsSubmit Permission = "measurements:submit"
	PermQCCreate           Permission = "qc:create"
	PermShipmentsCreate    Permission = "shipments:create"
	PermTasksUpdate        Permission = "tasks:update"
	PermNotesCreate        Permission = "notes:create"
	PermAuditRead          Permission = "audit:read"
)

var rolePermissions = map[Role]map[Permission]bool{
	RoleOwner: {
		PermWorkOrdersRead: true, PermWorkOrdersCreate: true, PermWorkOrdersUpdate: true,
		PermMeasurementsSubmit: true, PermQCCreate: true, PermShipmentsCreate: true,
		PermTasksUpdate: true, PermNotesCreate: true, PermAuditRead: true,
	},
	RoleOps: {
		PermWorkOrdersRead: true, PermWorkOrdersCreate: true, PermWorkOrdersUpdate: true,
		PermMeasurementsSubmit: true, PermShipmentsCreate: true,
		PermTasksUpdate: true, PermNotesCreate: true, PermAuditRead: true,
	},
	RoleQC: {
		PermWorkOrdersRead: true, PermQCCreate: true, PermNotesCreate: true,
	},
	RoleProductionTailor: {
		PermWorkOrdersRead: true, PermTasksUpdate: true, PermNotesCreate: true,
	},
	RoleFittingTailor: {
		PermWorkOrdersRead: true, PermWorkOrdersUpdate: true,
		PermMeasurementsSubmit: true, PermTasksUpdate: true, PermNotesCreate: true,
	},
}

// Allowed reports whether role may perform permission. Unknown roles have no
// permissions.
func Allowed(role Role, permission Permission) bool {
	return rolePermissions[role][permission]
}
