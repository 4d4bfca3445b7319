package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypheri-lang/cypheri/op"
)

func TestEmit(t *testing.T) {
	fn := &Function{}
	require.Equal(t, 0, fn.Emit(Instruction{Op: op.LII, I: 1}))
	require.Equal(t, 1, fn.Emit(Instruction{Op: op.Return}))
	require.Len(t, fn.Instructions, 2)
}

func TestJumpPatching(t *testing.T) {
	fn := &Function{}
	jump := fn.EmitJump(op.JumpIfZero)
	require.Equal(t, JumpPlaceholder, fn.Instructions[jump].I)

	fn.Emit(Instruction{Op: op.LII, I: 1})
	fn.Emit(Instruction{Op: op.Return})
	fn.PatchJump(jump)
	require.Equal(t, uint64(3), fn.Instructions[jump].I)
}

func TestNewModule(t *testing.T) {
	mod := NewModule()
	require.NotNil(t, mod.Functions)
	require.Empty(t, mod.StrLits)
	require.Empty(t, mod.GlobalNames)
}
