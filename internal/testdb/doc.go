// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests are skipped when no database URL is configured.
//
// A typical test opens a shared connection, applies the schema and runs each
// case inside a transaction that is rolled back afterwards:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.SetupTestDatabaseSchema(t, db)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    s := postgres.NewPostgresTaskStore(tx, nil)
//	    // ...
//	})
package testdb
