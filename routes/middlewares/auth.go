package middlewares

import (
	"crypto/rsa"
	"encoding/base64"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"

	"github.com/bramblecoop/bramble/controllers/helpers"
	"github.com/bramblecoop/bramble/types"
)

var (
	AuthzInvalidSession = "authz.invalid_session"
	JwtDecodeAndVerify  = "jwt.decode_and_verify"
)

const CurrentUserKey = "CurrentUser"

// Auth struct represents parsed jwt information.
type Auth struct {
	UID      string     `json:"uid"`
	State    string     `json:"state"`
	Email    string     `json:"email"`
	Role     types.Role `json:"role"`
	TenantID string     `json:"tenant_id"`
	Audience []string   `json:"aud,omitempty"`

	jwt.StandardClaims
}

// TenantScoped reports whether the caller only sees rows of its own tenant.
func (a *Auth) TenantScoped() bool {
	return a != nil && a.Role == types.RoleCoopAdmin
}

func CurrentUser(c *fiber.Ctx) *Auth {
	auth, _ := c.Locals(CurrentUserKey).(*Auth)

	return auth
}

// ParsePublicKey decodes a base64 encoded RSA public key in PEM format.
func ParsePublicKey(encoded string) (*rsa.PublicKey, error) {
	pem, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	return jwt.ParseRSAPublicKeyFromPEM(pem)
}

func Authenticate(publicKey *rsa.PublicKey) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if len(token) == 0 {
			return c.Status(401).JSON(helpers.NewErrors(AuthzInvalidSession))
		}

		token = strings.TrimPrefix(token, "Bearer ")

		auth := &Auth{}
		_, err := jwt.ParseWithClaims(token, auth, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return publicKey, nil
		})
		if err != nil {
			return c.Status(422).JSON(helpers.NewErrors(JwtDecodeAndVerify))
		}

		c.Locals(CurrentUserKey, auth)

		return c.Next()
	}
}
