package ioschema

import "fmt"

// collatedColumns are the name columns that sort and compare bytewise
// on PostgreSQL, the way they do on SQLite.
var collatedColumns = []struct {
	table, column string
}{
	{"categories", "name"},
	{"herbs", "name"},
	{"herbs", "canonical"},
	{"aliases", "alias"},
	{"aliases", "canonical"},
	{"vocabulary", "term"},
}

// collationSQL returns the statement that sets "C" collation on a text
// column. Identifiers are quoted because "references" and similar table
// names are reserved words in PostgreSQL.
func collationSQL(table, column string) string {
	return fmt.Sprintf(
		`ALTER TABLE %q ALTER COLUMN %q TYPE TEXT COLLATE "C"`,
		table, column,
	)
}
