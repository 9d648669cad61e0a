package types

type EntityType = string

var (
	EntityInstructor EntityType = "INSTRUCTOR"
	EntityCoop       EntityType = "COOP"
	EntityFamily     EntityType = "FAMILY"
	EntityPlatform   EntityType = "PLATFORM"
)

// EntityTypes is the closed set of ledger entity types.
var EntityTypes = []EntityType{EntityInstructor, EntityCoop, EntityFamily, EntityPlatform}

func IsEntityType(val EntityType) bool {
	for _, t := range EntityTypes {
		if t == val {
			return true
		}
	}

	return false
}

type PayoutStatus = string

var (
	PayoutPending PayoutStatus = "PENDING"
	PayoutPaid    PayoutStatus = "PAID"
	PayoutFailed  PayoutStatus = "FAILED"
)

type OrderBy = string

var (
	OrderByAsc  OrderBy = "asc"
	OrderByDesc OrderBy = "desc"
)

type Role = string

var (
	RoleSuperAdmin Role = "superadmin"
	RoleOperator   Role = "operator"
	RoleCoopAdmin  Role = "coop_admin"
	RoleInstructor Role = "instructor"
	RoleFamily     Role = "family"
)
