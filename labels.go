// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok

import (
	"fmt"
	"hash/fnv"
)

// ClassId identifies a byte class ("Alpha", "Number", ...).
type ClassId uint32

// StateId identifies an automaton state ("Start", "Pos", ...).
// It shares the identifier scheme with ClassId but is a separate type.
type StateId uint32

// NoClass is the class of every byte with no entry in the class table.
const NoClass ClassId = 0

// StartState is the state every run (and every fresh span) begins in.
var StartState = StateOf("Start")

// Label returns the identifier for a name: the 32-bit FNV-1a hash of its bytes.
// The same name always yields the same identifier, in every process.
func Label(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

// ClassOf returns the class identifier for name.
func ClassOf(name string) ClassId {
	return ClassId(Label(name))
}

// StateOf returns the state identifier for name.
func StateOf(name string) StateId {
	return StateId(Label(name))
}

// Labels records the names behind identifiers so they can be printed
// and so that two names hashing to the same identifier are caught.
type Labels struct {
	names map[uint32]string
	order []uint32 // first-seen order
}

func newLabels() *Labels {
	return &Labels{names: make(map[uint32]string)}
}

// Intern returns the identifier for name, recording the name.
// It fails if a different name already owns the identifier or if
// the identifier is the reserved zero value.
func (l *Labels) Intern(name string) (uint32, error) {
	id := Label(name)
	if id == 0 {
		return 0, fmt.Errorf("label %q hashes to the reserved identifier 0", name)
	}
	if prior, ok := l.names[id]; ok {
		if prior != name {
			return 0, fmt.Errorf("label %q collides with %q (id %08x)", name, prior, id)
		}
		return id, nil
	}
	l.names[id] = name
	l.order = append(l.order, id)
	return id, nil
}

// Name returns the recorded name for id. Unknown identifiers are
// rendered as hex so that output stays readable.
func (l *Labels) Name(id uint32) string {
	if l != nil {
		if name, ok := l.names[id]; ok {
			return name
		}
	}
	if id == 0 {
		return "none"
	}
	return fmt.Sprintf("#%08x", id)
}

// Has reports whether id was interned.
func (l *Labels) Has(id uint32) bool {
	if l == nil {
		return false
	}
	_, ok := l.names[id]
	return ok
}

// Len is the number of distinct names interned.
func (l *Labels) Len() int {
	if l == nil {
		return 0
	}
	return len(l.order)
}

// Ids returns the interned identifiers in first-seen order.
func (l *Labels) Ids() []uint32 {
	if l == nil {
		return nil
	}
	ids := make([]uint32, len(l.order))
	copy(ids, l.order)
	return ids
}
