package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnake(t *testing.T) {
	assert.Equal(t, "entity_type", toSnake("EntityType"))
	assert.Equal(t, "entity_id", toSnake("EntityID"))
	assert.Equal(t, "tenant_id", toSnake("tenant_id"))
	assert.Equal(t, "uuid", toSnake("UUID"))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "last_run"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}

func TestUnixTime(t *testing.T) {
	assert.True(t, UnixTime(0).IsZero())
	assert.Equal(t, int64(1700000000), UnixTime(1700000000).Unix())
	assert.True(t, UnixTime(-5).IsZero())
}
