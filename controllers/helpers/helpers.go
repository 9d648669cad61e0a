package helpers

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gookit/validate"
)

const (
	RecordNotFound      = "record.not_found"
	InvalidQuery        = "server.method.invalid_query"
	InvalidBody         = "server.method.invalid_body"
	ServerInternalError = "server.internal_error"
	InvalidPermission   = "authz.invalid_permission"
)

type Errors struct {
	Errors []string `json:"errors"`
}

func (e Errors) Size() int {
	return len(e.Errors)
}

func NewErrors(keys ...string) Errors {
	return Errors{Errors: keys}
}

// Validate runs the struct's validate tags and appends one
// "<prefix>.invalid_<field>" key per failing field.
func Validate(payload interface{}, prefix string, errSrc *Errors) {
	v := validate.Struct(payload)
	if v.Validate() {
		return
	}

	fields := make([]string, 0)
	for field := range v.Errors.All() {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		errSrc.Errors = append(errSrc.Errors, prefix+".invalid_"+toSnake(field))
	}
}

func UnixTime(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}

	return time.Unix(sec, 0)
}

func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}

func toSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return b.String()
}
