package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func tableNames(t *testing.T, database *sql.DB) map[string]bool {
	t.Helper()
	rows, err := database.Query(`SELECT name FROM sqlite_master WHERE type = 'table'`)
	require.NoError(t, err)
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names[name] = true
	}
	require.NoError(t, rows.Err())
	return names
}

func TestMigrate_CreatesSchema(t *testing.T) {
	database := openTestDB(t)

	names := tableNames(t, database)
	assert.True(t, names["plans"])
	assert.True(t, names["plan_items"])
	assert.True(t, names["predecessor_edges"])
}

func TestMigrate_Rerunnable(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func seedPlanAndItems(t *testing.T, database *sql.DB) {
	t.Helper()
	_, err := database.Exec(`INSERT INTO plans (id, short_id, name, start_date, created_at, updated_at)
		VALUES ('p1', 'TST01', 'Test', '2026-03-02', '2026-03-02T00:00:00Z', '2026-03-02T00:00:00Z')`)
	require.NoError(t, err)
	for _, id := range []string{"i1", "i2"} {
		_, err := database.Exec(`INSERT INTO plan_items (id, plan_id, title, created_at, updated_at)
			VALUES (?, 'p1', ?, '2026-03-02T00:00:00Z', '2026-03-02T00:00:00Z')`, id, id)
		require.NoError(t, err)
	}
}

func TestSchema_RejectsInvalidDependencyType(t *testing.T) {
	database := openTestDB(t)
	seedPlanAndItems(t, database)

	_, err := database.Exec(`INSERT INTO predecessor_edges (item_id, predecessor_id, dep_type, created_at)
		VALUES ('i2', 'i1', 'XX', '2026-03-02T00:00:00Z')`)
	assert.Error(t, err)
}

func TestSchema_RejectsSelfLoopEdge(t *testing.T) {
	database := openTestDB(t)
	seedPlanAndItems(t, database)

	_, err := database.Exec(`INSERT INTO predecessor_edges (item_id, predecessor_id, created_at)
		VALUES ('i1', 'i1', '2026-03-02T00:00:00Z')`)
	assert.Error(t, err)
}

func TestSchema_RejectsDuplicateEdgePair(t *testing.T) {
	database := openTestDB(t)
	seedPlanAndItems(t, database)

	_, err := database.Exec(`INSERT INTO predecessor_edges (item_id, predecessor_id, created_at)
		VALUES ('i2', 'i1', '2026-03-02T00:00:00Z')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO predecessor_edges (item_id, predecessor_id, created_at)
		VALUES ('i2', 'i1', '2026-03-02T00:00:00Z')`)
	assert.Error(t, err)
}

func TestSchema_CascadesEdgeDeleteWithItem(t *testing.T) {
	database := openTestDB(t)
	seedPlanAndItems(t, database)

	_, err := database.Exec(`INSERT INTO predecessor_edges (item_id, predecessor_id, created_at)
		VALUES ('i2', 'i1', '2026-03-02T00:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`DELETE FROM plan_items WHERE id = 'i1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM predecessor_edges`).Scan(&count))
	assert.Zero(t, count, "edges referencing a deleted item must cascade away")
}
