// Package datarecording stores the write-enable and command traces of a
// simulation in SQLite.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// Trace tables.
const (
	MemWriteTable = "pdq_mem_write"
	CommandTable  = "pdq_command"
)

// MemWrite is one payload word seen by a memory writer. Enabled tells if the
// word reached a memory.
type MemWrite struct {
	Cycle    uint64 `db:"cycle"`
	Location string `db:"location"`
	Dest     int    `db:"dest"`
	Address  uint16 `db:"address"`
	Data     uint16 `db:"data"`
	Enabled  bool   `db:"enabled"`
}

func (w MemWrite) values() []any {
	return []any{w.Cycle, w.Location, w.Dest, w.Address, w.Data, w.Enabled}
}

// Command is one command accepted by a dispatcher.
type Command struct {
	Cycle    uint64 `db:"cycle"`
	Location string `db:"location"`
	Value    uint8  `db:"value"`
	Name     string `db:"name"`
}

func (c Command) values() []any {
	return []any{c.Cycle, c.Location, c.Value, c.Name}
}

var schema = []string{
	`CREATE TABLE ` + MemWriteTable + ` (
	cycle    INTEGER NOT NULL,
	location TEXT    NOT NULL,
	dest     INTEGER NOT NULL,
	address  INTEGER NOT NULL,
	data     INTEGER NOT NULL,
	enabled  BOOLEAN NOT NULL
);`,
	`CREATE INDEX ` + MemWriteTable + `_target ON ` +
		MemWriteTable + ` (dest, address);`,
	`CREATE TABLE ` + CommandTable + ` (
	cycle    INTEGER NOT NULL,
	location TEXT    NOT NULL,
	value    INTEGER NOT NULL,
	name     TEXT    NOT NULL
);`,
}

// DataRecorder buffers trace rows and stores them in the trace tables.
type DataRecorder interface {
	// RecordMemWrite buffers a row of the memory write table.
	RecordMemWrite(w MemWrite)

	// RecordCommand buffers a row of the command table.
	RecordCommand(c Command)

	// ListTables returns the names of all tables in alphabetical order.
	ListTables() []string

	// Flush writes all the buffered rows into the database.
	Flush()
}

const defaultBatchSize = 100000

// New creates a DataRecorder that writes into path + ".sqlite3". An empty
// path picks a unique file name.
func New(path string) DataRecorder {
	r := &sqliteRecorder{
		dbName:    path,
		batchSize: defaultBatchSize,
	}

	r.Init()
	r.createSchema()

	atexit.Register(func() { r.Flush() })

	return r
}

// NewWithDB creates a new DataRecorder with a given database. The database
// must not hold the trace tables yet.
func NewWithDB(db *sql.DB) DataRecorder {
	r := &sqliteRecorder{
		DB:        db,
		batchSize: defaultBatchSize,
	}

	r.createSchema()

	atexit.Register(func() { r.Flush() })

	return r
}

// sqliteRecorder writes trace rows into a SQLite database.
type sqliteRecorder struct {
	*sql.DB

	dbName    string
	batchSize int

	memWrites []MemWrite
	commands  []Command
}

// Init establishes a connection to the database.
func (r *sqliteRecorder) Init() {
	if r.dbName == "" {
		r.dbName = "pdqsim_recording_" + xid.New().String()
	}

	filename := r.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	r.DB = db
}

func (r *sqliteRecorder) createSchema() {
	for _, stmt := range schema {
		r.mustExecute(stmt)
	}
}

func (r *sqliteRecorder) RecordMemWrite(w MemWrite) {
	r.memWrites = append(r.memWrites, w)
	r.flushIfFull()
}

func (r *sqliteRecorder) RecordCommand(c Command) {
	r.commands = append(r.commands, c)
	r.flushIfFull()
}

func (r *sqliteRecorder) flushIfFull() {
	if len(r.memWrites)+len(r.commands) >= r.batchSize {
		r.Flush()
	}
}

func (r *sqliteRecorder) ListTables() []string {
	rows, err := r.Query(`SELECT name FROM sqlite_master
		WHERE type = 'table' ORDER BY name;`)
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			panic(err)
		}

		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		panic(err)
	}

	return tables
}

func (r *sqliteRecorder) Flush() {
	if len(r.memWrites) == 0 && len(r.commands) == 0 {
		return
	}

	tx, err := r.Begin()
	if err != nil {
		panic(err)
	}

	insertRows(tx, MemWriteTable, r.memWrites, MemWrite.values)
	insertRows(tx, CommandTable, r.commands, Command.values)

	err = tx.Commit()
	if err != nil {
		panic(err)
	}

	r.memWrites = nil
	r.commands = nil
}

func insertRows[T any](
	tx *sql.Tx,
	table string,
	rows []T,
	values func(T) []any,
) {
	if len(rows) == 0 {
		return
	}

	stmt, err := tx.Prepare(insertStatement(table, rows[0]))
	if err != nil {
		panic(err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.Exec(values(row)...)
		if err != nil {
			panic(err)
		}
	}
}

// insertStatement names the columns after the db tags of the row type.
func insertStatement(table string, row any) string {
	fields := structs.Fields(row)
	columns := make([]string, len(fields))
	params := make([]string, len(fields))

	for i, f := range fields {
		columns[i] = f.Tag("db")
		params[i] = "?"
	}

	return "INSERT INTO " + table +
		" (" + strings.Join(columns, ", ") + ")" +
		" VALUES (" + strings.Join(params, ", ") + ")"
}

func (r *sqliteRecorder) mustExecute(query string) sql.Result {
	res, err := r.Exec(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}
