// Package dis renders bytecode modules in the textual form used by the
// parse test driver: a header line per function followed by one indented
// line per instruction.
package dis

import (
	"fmt"
	"io"
	"sort"

	"github.com/cypheri-lang/cypheri/bytecode"
	"github.com/cypheri-lang/cypheri/nametable"
	"github.com/cypheri-lang/cypheri/op"
)

// printer wraps a writer with a sticky error so the formatting code can
// stay free of per-line checks.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Disassemble writes every function in the module to w in name-ID order.
// The name table must be the one used while compiling the module.
func Disassemble(w io.Writer, mod *bytecode.Module, nameTable *nametable.Table) error {
	ids := make([]nametable.NameID, 0, len(mod.Functions))
	for id := range mod.Functions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	p := &printer{w: w}
	for _, id := range ids {
		fn := mod.Functions[id]
		p.printf("Function %s(args = %d, locals = %d):\n",
			nameTable.GetName(fn.Name), fn.ArgCount, fn.LocalCount)
		for i, instr := range fn.Instructions {
			p.printf("\t+%04d: %s", i, instr.Op)
			switch op.GetInfo(instr.Op).Operand {
			case op.OperandInt, op.OperandIndex:
				p.printf("\t%d", instr.I)
			case op.OperandFloat:
				p.printf("\t%v", instr.F)
			case op.OperandBool:
				p.printf("\t%t", instr.I != 0)
			case op.OperandStr:
				p.printf("\t\"%s\"", mod.StrLits[instr.I])
			case op.OperandName:
				p.printf("\t%s", nameTable.GetName(nametable.NameID(instr.I)))
			case op.OperandCount:
				p.printf("\t%d", instr.N)
			}
			p.printf("\n")
		}
		p.printf("\n")
	}
	return p.err
}
