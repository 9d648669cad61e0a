package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bramblecoop/bramble/controllers/helpers"
	"github.com/bramblecoop/bramble/types"
)

func hasRole(c *fiber.Ctx, roles ...types.Role) bool {
	auth := CurrentUser(c)
	if auth == nil {
		return false
	}

	for _, role := range roles {
		if auth.Role == role {
			return true
		}
	}

	return false
}

// AdminValidator lets through every role allowed to read payout data.
// coop_admin callers also need a tenant claim.
func AdminValidator(c *fiber.Ctx) error {
	if !hasRole(c, types.RoleSuperAdmin, types.RoleOperator, types.RoleCoopAdmin) {
		return c.Status(422).JSON(helpers.NewErrors(helpers.InvalidPermission))
	}

	if auth := CurrentUser(c); auth.TenantScoped() && len(auth.TenantID) == 0 {
		return c.Status(422).JSON(helpers.NewErrors(helpers.InvalidPermission))
	}

	return c.Next()
}

func OperatorValidator(c *fiber.Ctx) error {
	if !hasRole(c, types.RoleSuperAdmin, types.RoleOperator) {
		return c.Status(422).JSON(helpers.NewErrors(helpers.InvalidPermission))
	}

	return c.Next()
}
