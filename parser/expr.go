package parser

import (
	"github.com/cypheri-lang/cypheri/bytecode"
	"github.com/cypheri-lang/cypheri/nametable"
	"github.com/cypheri-lang/cypheri/op"
	"github.com/cypheri-lang/cypheri/token"
)

// Assignment targets cannot be compiled until the operator has been seen:
// "x = e" emits e then a store, while "x += e" must also reload x and
// combine. Expressions are therefore parsed into a small transient tree
// first; the assignment statement decides how to emit it, and everything
// else emits immediately and discards the tree.

type lvalueKind int

const (
	lvalueNone     lvalueKind = iota // not an lvalue
	lvalueSimple                     // local or global variable
	lvalueCompound                   // member or index target, reserved
)

type exprNode interface {
	// emit appends instructions that leave the expression's value on the stack.
	emit(fn *bytecode.Function)
	lvalueType() lvalueKind
	// emitStore appends instructions that pop a value and write it to the
	// target. Only meaningful for lvalue nodes.
	emitStore(fn *bytecode.Function)
}

// rvalue provides the non-lvalue defaults.
type rvalue struct{}

func (rvalue) lvalueType() lvalueKind { return lvalueNone }

func (rvalue) emitStore(*bytecode.Function) {}

// simpleLeaf is a zero-operand instruction such as LINULL.
type simpleLeaf struct {
	rvalue
	op op.Code
}

func (n *simpleLeaf) emit(fn *bytecode.Function) {
	fn.Emit(bytecode.Instruction{Op: n.op})
}

type litInt struct {
	rvalue
	val uint64
}

func (n *litInt) emit(fn *bytecode.Function) {
	fn.Emit(bytecode.Instruction{Op: op.LII, I: n.val})
}

type litNum struct {
	rvalue
	val float64
}

func (n *litNum) emit(fn *bytecode.Function) {
	fn.Emit(bytecode.Instruction{Op: op.LIN, F: n.val})
}

type litStr struct {
	rvalue
	strIdx int
}

func (n *litStr) emit(fn *bytecode.Function) {
	fn.Emit(bytecode.Instruction{Op: op.LIStr, I: uint64(n.strIdx)})
}

type litBool struct {
	rvalue
	val bool
}

func (n *litBool) emit(fn *bytecode.Function) {
	var encoded uint64
	if n.val {
		encoded = 1
	}
	fn.Emit(bytecode.Instruction{Op: op.LIBool, I: encoded})
}

// localRef loads or stores a local slot.
type localRef struct {
	slot int
}

func (n *localRef) emit(fn *bytecode.Function) {
	fn.Emit(bytecode.Instruction{Op: op.LoadLocal, I: uint64(n.slot)})
}

func (n *localRef) lvalueType() lvalueKind { return lvalueSimple }

func (n *localRef) emitStore(fn *bytecode.Function) {
	fn.Emit(bytecode.Instruction{Op: op.StoreLocal, I: uint64(n.slot)})
}

// globalRef loads or stores a global, resolved by name at execution time.
type globalRef struct {
	name nametable.NameID
}

func (n *globalRef) emit(fn *bytecode.Function) {
	fn.Emit(bytecode.Instruction{Op: op.LoadGlobal, I: uint64(n.name)})
}

func (n *globalRef) lvalueType() lvalueKind { return lvalueSimple }

func (n *globalRef) emitStore(fn *bytecode.Function) {
	fn.Emit(bytecode.Instruction{Op: op.StoreGlobal, I: uint64(n.name)})
}

type unaryExpr struct {
	rvalue
	expr exprNode
	op   op.Code
}

func (n *unaryExpr) emit(fn *bytecode.Function) {
	n.expr.emit(fn)
	fn.Emit(bytecode.Instruction{Op: n.op})
}

type binaryExpr struct {
	rvalue
	lhs, rhs exprNode
	op       op.Code
}

func (n *binaryExpr) emit(fn *bytecode.Function) {
	n.lhs.emit(fn)
	n.rhs.emit(fn)
	fn.Emit(bytecode.Instruction{Op: n.op})
}

// callExpr loads the arguments in order, then the callee, then calls.
type callExpr struct {
	rvalue
	callee exprNode
	args   []exprNode
}

func (n *callExpr) emit(fn *bytecode.Function) {
	for _, arg := range n.args {
		arg.emit(fn)
	}
	n.callee.emit(fn)
	fn.Emit(bytecode.Instruction{Op: op.Call, N: len(n.args)})
}

// parseExpr parses an expression and emits it into fn.
func (p *Parser) parseExpr(fn *bytecode.Function, precedence int) bool {
	expr := p.parseExprTree(precedence)
	if expr == nil {
		return false
	}
	expr.emit(fn)
	return true
}

// parseExprTree parses an expression into a transient tree without emitting.
func (p *Parser) parseExprTree(precedence int) exprNode {
	return p.parseExprBin(precedence)
}

func (p *Parser) parseExprBin(precedence int) exprNode {
	left := p.parseExprUnary()
	if left == nil {
		return nil
	}
	for precedenceOf(p.peek().Type) >= precedence {
		opTok := p.consume()
		if opTok.Type == token.LPAREN {
			// function call; the closing parenthesis is consumed by the list
			args, ok := p.parseValueList(token.RPAREN)
			if !ok {
				return nil
			}
			left = &callExpr{callee: left, args: args}
		} else {
			// equal precedence binds to the left, so the right operand
			// starts one level higher
			right := p.parseExprBin(precedenceOf(opTok.Type) + 1)
			if right == nil {
				return nil
			}
			left = &binaryExpr{lhs: left, rhs: right, op: instrFor(opTok.Type)}
		}
	}
	return left
}

func (p *Parser) parseExprUnary() exprNode {
	var code op.Code
	switch p.peek().Type {
	case token.MINUS:
		code = op.Neg
	case token.BANG:
		code = op.Not
	case token.TILDE:
		code = op.BNot
	default:
		return p.parseExprPrimary()
	}
	p.consume()
	operand := p.parseExprUnary()
	if operand == nil {
		return nil
	}
	return &unaryExpr{expr: operand, op: code}
}

// parseValueList parses a comma-separated expression list terminated by
// term, consuming the terminator. Trailing commas are accepted.
func (p *Parser) parseValueList(term token.Type) ([]exprNode, bool) {
	var values []exprNode
	for !p.match(term) {
		arg := p.parseExprTree(0)
		if arg == nil {
			return nil, false
		}
		values = append(values, arg)
		if p.peek().Type != term {
			p.expect(token.COMMA)
			if p.err != nil {
				return nil, false
			}
		}
	}
	return values, true
}

func (p *Parser) parseExprPrimary() exprNode {
	switch p.peek().Type {
	case token.LPAREN:
		p.consume()
		expr := p.parseExprTree(0)
		if expr == nil {
			return nil
		}
		p.expect(token.RPAREN)
		if p.err != nil {
			return nil
		}
		return expr
	case token.IDENT:
		tok := p.consume()
		if slot, ok := p.localNames.get(tok.ID); ok {
			return &localRef{slot: slot}
		}
		return &globalRef{name: tok.ID}
	case token.TRUE:
		p.consume()
		return &litBool{val: true}
	case token.FALSE:
		p.consume()
		return &litBool{val: false}
	case token.NULL:
		p.consume()
		return &simpleLeaf{op: op.LINull}
	case token.INT:
		return &litInt{val: p.consume().Integer}
	case token.NUMBER:
		return &litNum{val: p.consume().Num}
	case token.STRING:
		return &litStr{strIdx: p.consume().StrIdx}
	}
	p.setError("primary expression expected", p.peek().Loc)
	return nil
}
