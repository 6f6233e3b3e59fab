package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgres(t *testing.T) {
	cases := map[string]bool{
		"postgres://u:p@db:5432/beachbox":                           true,
		"postgresql://db/beachbox":                                  true,
		"host=db user=beach password=s3cret dbname=beachbox":        true,
		"  dbname=beachbox sslmode=disable":                         true,
		"beachbox.db":                                               false,
		"file:test?mode=memory&cache=shared":                        false,
		"file:/var/lib/beachbox/host.db?_pragma=busy_timeout(5000)": false,
	}
	for dsn, want := range cases {
		assert.Equal(t, want, IsPostgres(dsn), dsn)
	}
}

func TestConnectSQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := Connect("file:database_fk?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	var on int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&on).Error)
	assert.Equal(t, 1, on)
}
