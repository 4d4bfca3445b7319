// Package parser consumes a token stream and emits bytecode for each
// function in a cypheri module.
//
// Statements are parsed by recursive descent; expressions use precedence
// climbing over the table in precedence.go. Each expression is first built
// as a transient tree (expr.go) and then emitted into the function being
// compiled; an assignment statement holds back its target's tree until the
// assignment operator is known.
package parser

import (
	"fmt"

	"github.com/cypheri-lang/cypheri/bytecode"
	"github.com/cypheri-lang/cypheri/errors"
	"github.com/cypheri-lang/cypheri/lexer"
	"github.com/cypheri-lang/cypheri/nametable"
	"github.com/cypheri-lang/cypheri/op"
	"github.com/cypheri-lang/cypheri/token"
)

// Parser holds the state for parsing one module. The first error latches:
// every later parse routine fails without replacing it.
type Parser struct {
	tokens     []token.Token
	pos        int
	err        *errors.SyntaxError
	strLits    []string
	nameTable  *nametable.Table
	localNames *scopedLocalNameTable
}

// Parse consumes a tokenize result and builds the bytecode module. If the
// tokenize result already carries an error, that error is returned
// unchanged without further work.
func Parse(res lexer.Result, nameTable *nametable.Table) (*bytecode.Module, error) {
	p := New(res, nameTable)
	mod := p.parse()
	if mod == nil {
		return nil, p.err
	}
	return mod, nil
}

// New returns a Parser over the given tokenize result.
func New(res lexer.Result, nameTable *nametable.Table) *Parser {
	return &Parser{
		tokens:     res.Tokens,
		err:        res.Err,
		strLits:    res.StrLiterals,
		nameTable:  nameTable,
		localNames: newScopedLocalNameTable(),
	}
}

func (p *Parser) eof() bool {
	return p.tokens[p.pos].Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

// consume returns the current token and advances, except at (eof), which is
// never consumed.
func (p *Parser) consume() token.Token {
	if p.eof() {
		return p.tokens[p.pos]
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// match consumes the current token if it has the given type.
func (p *Parser) match(t token.Type) bool {
	if p.peek().Type == t {
		p.consume()
		return true
	}
	return false
}

// expect consumes the current token and records an error if its type differs.
func (p *Parser) expect(t token.Type) token.Token {
	tok := p.consume()
	if tok.Type != t {
		p.setError(fmt.Sprintf("expected %s, got %s", t, tok.Type), tok.Loc)
	}
	return tok
}

// setError latches the first error; later calls are ignored.
func (p *Parser) setError(msg string, loc errors.SourceLocation) {
	if p.err == nil {
		p.err = errors.New(msg, loc)
	}
}

func (p *Parser) parse() *bytecode.Module {
	if p.err != nil {
		return nil
	}

	mod := bytecode.NewModule()
	for !p.eof() {
		tk := p.peek()
		switch tk.Type {
		case token.FUNCTION:
			fn := p.parseFunction()
			if fn == nil {
				return nil
			}
			mod.Functions[fn.Name] = fn
		case token.DECLARE:
			// TODO: parse module-level variable declarations
			p.setError("global variable declarations not implemented yet", tk.Loc)
			return nil
		case token.IMPORT:
			// TODO: parse imports
			p.setError("imports not implemented yet", tk.Loc)
			return nil
		default:
			p.setError(fmt.Sprintf("%s can not appear at the top-level of a module", tk.Type), tk.Loc)
			return nil
		}
	}

	mod.StrLits = p.strLits
	return mod
}

func (p *Parser) parseFunction() *bytecode.Function {
	if p.err != nil {
		return nil
	}
	p.localNames = newScopedLocalNameTable()

	fn := &bytecode.Function{}
	p.expect(token.FUNCTION)
	if p.err != nil {
		return nil
	}

	fn.Name = p.expect(token.IDENT).ID
	if p.err != nil {
		return nil
	}

	p.expect(token.LPAREN)
	if p.err != nil {
		return nil
	}

	for !p.match(token.RPAREN) {
		tok := p.expect(token.IDENT)
		if p.err != nil {
			return nil
		}

		if _, found := p.localNames.get(tok.ID); found {
			p.setError(fmt.Sprintf("duplicate local name %s", p.nameTable.GetName(tok.ID)), tok.Loc)
			return nil
		}
		p.localNames.add(tok.ID)
		fn.ArgCount++
		fn.LocalCount++

		if p.peek().Type != token.RPAREN {
			p.expect(token.COMMA)
			if p.err != nil {
				return nil
			}
		}
	}

	if !p.parseBlock(fn, false) {
		return nil
	}
	return fn
}

// parseBlock parses statements until End. Inside an If branch (ifBlock),
// Else, ElseIf, and End also terminate the block but are left for
// parseIfElse to identify and consume.
func (p *Parser) parseBlock(fn *bytecode.Function, ifBlock bool) bool {
	p.localNames.enterScope()
	for {
		if p.eof() {
			p.setError("unexpected end of file", p.peek().Loc)
			return false
		}

		if ifBlock && (p.peek().Type == token.ELSE || p.peek().Type == token.ELSEIF ||
			p.peek().Type == token.END) {
			break
		} else if p.match(token.END) {
			break
		}

		if !p.parseStatement(fn) {
			return false
		}
	}
	p.localNames.leaveScope()
	return true
}

func (p *Parser) parseStatement(fn *bytecode.Function) bool {
	switch p.peek().Type {
	case token.DECLARE:
		return p.parseDeclare(fn)
	case token.IF:
		return p.parseIfElse(fn)
	case token.RETURN:
		p.consume()
		if p.peek().Type == token.SEMICOLON {
			fn.Emit(bytecode.Instruction{Op: op.ReturnNull})
		} else {
			if !p.parseExpr(fn, 0) {
				return false
			}
			fn.Emit(bytecode.Instruction{Op: op.Return})
		}
		p.expect(token.SEMICOLON)
		return p.err == nil
	default:
		return p.parseAssign(fn)
	}
}

// parseAssign handles both assignment statements and bare expression
// statements; which one it is only becomes known after the expression has
// been parsed.
func (p *Parser) parseAssign(fn *bytecode.Function) bool {
	lhs := p.parseExprTree(0)
	if lhs == nil {
		return false
	}

	if p.match(token.SEMICOLON) {
		// not an assignment, just an expression
		lhs.emit(fn)
		fn.Emit(bytecode.Instruction{Op: op.PopN, N: 1})
		return true
	}

	if !assignOps[p.peek().Type] {
		p.setError("unexpected token", p.peek().Loc)
		return false
	}

	tk := p.consume()
	kind := lhs.lvalueType()
	if kind == lvalueNone {
		p.setError("cannot assign to rvalue", tk.Loc)
		return false
	}

	if !p.parseExpr(fn, 0) {
		return false
	}

	if kind == lvalueSimple {
		if tk.Type == token.ASSIGN {
			lhs.emitStore(fn)
		} else {
			lhs.emit(fn)
			fn.Emit(bytecode.Instruction{Op: op.Swap})
			fn.Emit(bytecode.Instruction{Op: instrFor(tk.Type)})
			lhs.emitStore(fn)
		}
	} else {
		// no expression shape produces a compound lvalue yet
		p.setError("assignment to member not implemented yet", tk.Loc)
		return false
	}

	p.expect(token.SEMICOLON)
	return p.err == nil
}

func (p *Parser) parseDeclare(fn *bytecode.Function) bool {
	p.expect(token.DECLARE)
	if p.err != nil {
		return false
	}

	for {
		tok := p.expect(token.IDENT)
		if p.err != nil {
			return false
		}

		if _, found := p.localNames.get(tok.ID); found {
			p.setError(fmt.Sprintf("variable %s already declared", p.nameTable.GetName(tok.ID)), tok.Loc)
			return false
		}

		p.localNames.add(tok.ID)
		fn.LocalCount++

		if p.match(token.ASSIGN) {
			if !p.parseExpr(fn, 0) {
				return false
			}
			// TODO: emit STLOCAL here instead; as emitted, the initializer
			// value stays on the operand stack and the slot is never written
			fn.Emit(bytecode.Instruction{Op: op.LoadLocal, I: uint64(fn.LocalCount - 1)})
		}

		if !p.match(token.SEMICOLON) {
			p.expect(token.COMMA)
			if p.err != nil {
				return false
			}
		} else {
			break
		}
	}
	return true
}

func (p *Parser) parseIfElse(fn *bytecode.Function) bool {
	p.expect(token.IF)
	if p.err != nil {
		return false
	}

	var thenJumps, elseJumps []int
	if !p.parseIfCond(fn, &thenJumps, &elseJumps) {
		return false
	}
	p.expect(token.THEN)
	if p.err != nil {
		return false
	}

	for _, jump := range thenJumps {
		fn.PatchJump(jump)
	}

	if !p.parseBlock(fn, true) {
		return false
	}

	var endJumps []int
	if p.peek().Type == token.ELSEIF || p.peek().Type == token.ELSE {
		endJumps = append(endJumps, fn.EmitJump(op.Jump))
	}
	for _, jump := range elseJumps {
		fn.PatchJump(jump)
	}

	for p.match(token.ELSEIF) {
		var eiThenJumps, eiElseJumps []int
		if !p.parseIfCond(fn, &eiThenJumps, &eiElseJumps) {
			return false
		}
		p.expect(token.THEN)
		if p.err != nil {
			return false
		}

		for _, jump := range eiThenJumps {
			fn.PatchJump(jump)
		}

		if !p.parseBlock(fn, true) {
			return false
		}
		if p.peek().Type == token.ELSEIF || p.peek().Type == token.ELSE {
			endJumps = append(endJumps, fn.EmitJump(op.Jump))
		}

		for _, jump := range eiElseJumps {
			fn.PatchJump(jump)
		}
	}

	if p.match(token.ELSE) {
		// the Else branch ends the chain, so its block takes the End with it
		if !p.parseBlock(fn, false) {
			return false
		}
	} else {
		p.expect(token.END)
		if p.err != nil {
			return false
		}
	}

	for _, jump := range endJumps {
		fn.PatchJump(jump)
	}
	return true
}

// parseIfCond lowers a condition chain of expressions joined by || and &&.
// An || emits JNZ into the then-jumps, an && emits JZ into the else-jumps,
// and the terminal expression emits JZ into the else-jumps. The caller
// patches then-jumps at the branch body and else-jumps at the next branch.
func (p *Parser) parseIfCond(fn *bytecode.Function, thenJumps, elseJumps *[]int) bool {
	for {
		// parse one condition, keeping || and && for the chain
		if !p.parseExpr(fn, precedenceOf(token.OR)+1) {
			return false
		}

		if p.match(token.OR) {
			*thenJumps = append(*thenJumps, fn.EmitJump(op.JumpIfNotZero))
		} else if p.match(token.AND) {
			*elseJumps = append(*elseJumps, fn.EmitJump(op.JumpIfZero))
		}

		if p.peek().Type == token.THEN {
			break
		}
	}

	// last branch
	*elseJumps = append(*elseJumps, fn.EmitJump(op.JumpIfZero))
	return true
}
