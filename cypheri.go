// Package cypheri compiles cypheri source text into in-memory bytecode
// modules. The pipeline is tokenize, then parse; both stages share one
// mutable name table, which becomes read-only once parsing finishes.
package cypheri

import (
	"github.com/cypheri-lang/cypheri/bytecode"
	"github.com/cypheri-lang/cypheri/lexer"
	"github.com/cypheri-lang/cypheri/nametable"
	"github.com/cypheri-lang/cypheri/parser"
)

// Compile runs the full front-end pipeline over source with a fresh name
// table. The returned table resolves the name IDs referenced by the module.
func Compile(source string) (*bytecode.Module, *nametable.Table, error) {
	nameTable := nametable.New()
	mod, err := parser.Parse(lexer.Tokenize(source, nameTable), nameTable)
	if err != nil {
		return nil, nil, err
	}
	return mod, nameTable, nil
}
