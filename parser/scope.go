package parser

import "github.com/cypheri-lang/cypheri/nametable"

// scopedLocalNameTable maps name IDs to local slot indices for the function
// currently being compiled. Slots are assigned densely in declaration order
// and are never reused: leaving a scope removes the bindings introduced in
// it, but nextID keeps its value, so a function's frame is as large as its
// total number of declarations.
type scopedLocalNameTable struct {
	nextID int
	scopes [][]nametable.NameID
	// per-name stack of active slot indices, innermost binding on top
	localNames map[nametable.NameID][]int
}

func newScopedLocalNameTable() *scopedLocalNameTable {
	return &scopedLocalNameTable{localNames: map[nametable.NameID][]int{}}
}

// get returns the active slot for name, if any.
func (t *scopedLocalNameTable) get(name nametable.NameID) (int, bool) {
	stack := t.localNames[name]
	if len(stack) == 0 {
		return 0, false
	}
	return stack[len(stack)-1], true
}

// add binds name to a fresh slot in the current scope and returns the slot.
// Names added before the first enterScope (function parameters) stay bound
// for the whole function.
func (t *scopedLocalNameTable) add(name nametable.NameID) int {
	id := t.nextID
	t.nextID++
	t.localNames[name] = append(t.localNames[name], id)
	if len(t.scopes) > 0 {
		top := len(t.scopes) - 1
		t.scopes[top] = append(t.scopes[top], name)
	}
	return id
}

func (t *scopedLocalNameTable) enterScope() {
	t.scopes = append(t.scopes, nil)
}

func (t *scopedLocalNameTable) leaveScope() {
	top := len(t.scopes) - 1
	for _, name := range t.scopes[top] {
		stack := t.localNames[name]
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			delete(t.localNames, name)
		} else {
			t.localNames[name] = stack
		}
	}
	t.scopes = t.scopes[:top]
}

// size returns the number of slots allocated so far.
func (t *scopedLocalNameTable) size() int {
	return t.nextID
}
