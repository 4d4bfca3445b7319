// Package bytecode defines the instruction, function, and module value types
// shared by the compiler front-end and a bytecode virtual machine.
package bytecode

import (
	"math"

	"github.com/cypheri-lang/cypheri/nametable"
	"github.com/cypheri-lang/cypheri/op"
)

// JumpPlaceholder is a temporary jump target written when a forward jump is
// emitted. Every placeholder is patched before parsing completes.
const JumpPlaceholder = uint64(math.MaxUint64)

// Instruction is an opcode plus at most one operand. Which field carries the
// operand depends on the opcode: N holds small counts (POPN, CALL), I holds
// integer literals, jump targets, local slot indices, name IDs, and bools
// encoded as 0/1, and F holds float literals.
type Instruction struct {
	Op op.Code
	N  int
	I  uint64
	F  float64
}

// Function is a single compiled function: its interned name, its parameter
// count, its frame size, and its instruction stream. The first ArgCount
// locals are the parameters, so LocalCount is always >= ArgCount.
type Function struct {
	Name         nametable.NameID
	ArgCount     int
	LocalCount   int
	Instructions []Instruction
}

// Emit appends an instruction and returns its index in the stream.
func (f *Function) Emit(instr Instruction) int {
	f.Instructions = append(f.Instructions, instr)
	return len(f.Instructions) - 1
}

// EmitJump appends a jump with a placeholder target and returns its index
// for later patching.
func (f *Function) EmitJump(code op.Code) int {
	return f.Emit(Instruction{Op: code, I: JumpPlaceholder})
}

// PatchJump sets the target of the jump at index to the current end of the
// instruction stream.
func (f *Function) PatchJump(index int) {
	f.Instructions[index].I = uint64(len(f.Instructions))
}

// Module is the output of parsing one source module: its top-level functions
// keyed by name ID, the string-literal pool inherited from the lexer, and
// the module-level variable names.
type Module struct {
	Functions   map[nametable.NameID]*Function
	StrLits     []string
	GlobalNames []nametable.NameID
}

// NewModule returns an empty module.
func NewModule() *Module {
	return &Module{Functions: map[nametable.NameID]*Function{}}
}
