package datastore

// Store is a destination that game rows can be published to: a local SQLite
// file or a remote Datasette instance.
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// BatchInsert inserts multiple records into the specified table
	BatchInsert(database string, table string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}

// GameRows converts games into the row maps accepted by BatchInsert.
func GameRows(games []GameRecord) []map[string]any {
	rows := make([]map[string]any, len(games))
	for i, g := range games {
		rows[i] = g.ToMap()
	}
	return rows
}

// Publish creates the games table if needed and inserts every game.
func Publish(store Store, database string, games []GameRecord) error {
	if err := store.CreateTable(gamesSchema); err != nil {
		return err
	}
	return store.BatchInsert(database, GamesTable, GameRows(games))
}
