package parser

import (
	"github.com/cypheri-lang/cypheri/op"
	"github.com/cypheri-lang/cypheri/token"
)

// Binary operator precedences. Larger numbers bind tighter. Postfix call
// and indexing sit above every arithmetic operator. Only '(' is parsed as a
// postfix form (a call); '[' has no indexing syntax behind it and is handled
// like a binary operator whose opcode is INVALID, and '.' never reaches the
// parser because the lexer rejects it.
var precedences = map[token.Type]int{
	token.OR:  40,
	token.AND: 40,

	token.PIPE:      50,
	token.CARET:     51,
	token.AMPERSAND: 52,

	token.EQ:        60,
	token.NOT_EQ:    60,
	token.LT:        65,
	token.GT:        65,
	token.LT_EQUALS: 65,
	token.GT_EQUALS: 65,

	token.LT_LT: 70,
	token.GT_GT: 70,

	token.PLUS:  80,
	token.MINUS: 80,

	token.ASTERISK:    90,
	token.SLASH:       90,
	token.SLASH_SLASH: 90,
	token.MOD:         90,

	token.POW: 95,

	token.LBRACKET: 100,
	token.LPAREN:   100,

	token.PERIOD: 110,
}

// precedenceOf returns the binary precedence of t, or -1 if t is not a
// binary operator.
func precedenceOf(t token.Type) int {
	if p, ok := precedences[t]; ok {
		return p
	}
	return -1
}

// binaryOpInstr maps operator tokens (including compound assignment forms)
// to the opcode that combines their operands.
var binaryOpInstr = map[token.Type]op.Code{
	token.PLUS:               op.Add,
	token.PLUS_EQUALS:        op.Add,
	token.MINUS:              op.Sub,
	token.MINUS_EQUALS:       op.Sub,
	token.ASTERISK:           op.Mul,
	token.ASTERISK_EQUALS:    op.Mul,
	token.SLASH:              op.Div,
	token.SLASH_EQUALS:       op.Div,
	token.SLASH_SLASH:        op.IDiv,
	token.SLASH_SLASH_EQUALS: op.IDiv,
	token.MOD:                op.Mod,
	token.MOD_EQUALS:         op.Mod,
	token.POW:                op.Pow,
	token.POW_EQUALS:         op.Pow,
	token.LT_LT:              op.Shl,
	token.LT_LT_EQUALS:       op.Shl,
	token.GT_GT:              op.Shr,
	token.GT_GT_EQUALS:       op.Shr,
	token.AMPERSAND:          op.BAnd,
	token.AMPERSAND_EQUALS:   op.BAnd,
	token.PIPE:               op.BOr,
	token.PIPE_EQUALS:        op.BOr,
	token.CARET:              op.BXor,
	token.CARET_EQUALS:       op.BXor,
	token.TILDE:              op.BNot,
	token.EQ:                 op.Eq,
	token.NOT_EQ:             op.Ne,
	token.LT:                 op.Lt,
	token.GT:                 op.Gt,
	token.LT_EQUALS:          op.Le,
	token.GT_EQUALS:          op.Ge,
	token.AND:                op.And,
	token.OR:                 op.Or,
	token.BANG:               op.Not,
}

// instrFor returns the opcode for an operator token, or INVALID for tokens
// that have no operation.
func instrFor(t token.Type) op.Code {
	if code, ok := binaryOpInstr[t]; ok {
		return code
	}
	return op.Invalid
}

// assignOps holds every assignment operator, simple and compound.
var assignOps = map[token.Type]bool{
	token.ASSIGN:             true,
	token.PLUS_EQUALS:        true,
	token.MINUS_EQUALS:       true,
	token.ASTERISK_EQUALS:    true,
	token.SLASH_EQUALS:       true,
	token.SLASH_SLASH_EQUALS: true,
	token.MOD_EQUALS:         true,
	token.POW_EQUALS:         true,
	token.LT_LT_EQUALS:       true,
	token.GT_GT_EQUALS:       true,
	token.AMPERSAND_EQUALS:   true,
	token.PIPE_EQUALS:        true,
	token.CARET_EQUALS:       true,
}
