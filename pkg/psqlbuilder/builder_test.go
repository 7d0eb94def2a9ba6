package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("reservations").
		Where(squirrel.Eq{"tenant_id": "t1"}).
		Where(squirrel.Lt{"start_at": "x"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM reservations WHERE tenant_id = $1 AND start_at < $2", query)
	assert.Equal(t, []interface{}{"t1", "x"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("reservations").
		Set("status", "cancelled").
		Where(squirrel.Eq{"id": 1}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE reservations SET status = $1 WHERE id = $2", query)
	assert.Len(t, args, 2)
}
