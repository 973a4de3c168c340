package core

import "strings"

// Column is one column definition from a CREATE TABLE statement.
// Type is kept as free text, e.g. "varchar(255)" or "int(11) unsigned".
type Column struct {
	Name string
	Type string
}

// Row holds cells aligned positionally with the table's columns.
type Row []Cell

// Table is a parsed table: its schema and rows in dump insertion order.
// Every row has exactly len(Columns) cells.
type Table struct {
	Name    string
	Columns []Column
	Rows    []Row
}

// ColumnIndex returns the index of the named column, or -1.
// Column names compare case-insensitively, as in MySQL.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Database maps table names to tables, preserving the order in which tables
// first appear in the dump. It is built once and read-only afterwards.
type Database struct {
	tables []*Table
	byName map[string]*Table
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{byName: make(map[string]*Table)}
}

// Add registers a table. It returns false if a table with the same name
// already exists.
func (d *Database) Add(t *Table) bool {
	if _, ok := d.byName[t.Name]; ok {
		return false
	}
	d.tables = append(d.tables, t)
	d.byName[t.Name] = t
	return true
}

// Table looks up a table by name.
func (d *Database) Table(name string) (*Table, bool) {
	t, ok := d.byName[name]
	return t, ok
}

// TableAt returns the i-th table in dump order.
func (d *Database) TableAt(i int) *Table {
	return d.tables[i]
}

// Len returns the number of tables.
func (d *Database) Len() int {
	return len(d.tables)
}

// Tables returns the tables in dump order.
func (d *Database) Tables() []*Table {
	out := make([]*Table, len(d.tables))
	copy(out, d.tables)
	return out
}

// Names returns the table names in dump order.
func (d *Database) Names() []string {
	names := make([]string, len(d.tables))
	for i, t := range d.tables {
		names[i] = t.Name
	}
	return names
}
