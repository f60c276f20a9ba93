// Package errorcatalog maps a contract's declared numeric error codes to
// their names and documentation, loaded from the contractspec custom
// section's error enum.
package errorcatalog

import (
	"fmt"

	"github.com/nspcc-dev/contractdbg/internal/wasmreader"
)

// Entry is one declared error code.
type Entry struct {
	Code uint32
	Name string
	Doc  string
}

// Database maps error codes to their declared entry.
type Database struct {
	byCode map[uint32]Entry
}

func New() *Database {
	return &Database{byCode: map[uint32]Entry{}}
}

// FromSpec builds a Database from a parsed contract spec. A nil spec
// (the section was absent) yields an empty, usable database.
func FromSpec(spec *wasmreader.ContractSpec) *Database {
	db := New()
	if spec == nil {
		return db
	}
	for _, e := range spec.Errors {
		db.byCode[e.Code] = Entry{Code: e.Code, Name: e.Name, Doc: e.Doc}
	}
	return db
}

// DisplayError renders the mapped name and documentation for code, or a
// generic placeholder if the code was never declared.
func (db *Database) DisplayError(code uint32) string {
	if e, ok := db.byCode[code]; ok {
		if e.Doc != "" {
			return fmt.Sprintf("%s: %s", e.Name, e.Doc)
		}
		return e.Name
	}
	return fmt.Sprintf("unknown error code %d", code)
}

// Lookup returns the declared entry for code, if any.
func (db *Database) Lookup(code uint32) (Entry, bool) {
	e, ok := db.byCode[code]
	return e, ok
}
