// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package fsmtok

// TransitionTable maps (state, class) pairs to the next state.
// It is immutable once compiled.
type TransitionTable struct {
	table   map[StateId]map[ClassId]StateId
	states  *Labels
	classes *Labels
}

// CompileTransitions compiles transition specification text. Each line has the form
//
//	FromState => Class1 | Class2 | ... => ToState
//
// The first registration of a (FromState, Class) pair wins, so specific
// rules placed after generic ones do not override them.
func CompileTransitions(text string, options ...Option) (*TransitionTable, error) {
	cfg, err := newConfig(options...)
	if err != nil {
		return nil, err
	}
	return compileTransitions(cfg, text)
}

func compileTransitions(cfg *Config, text string) (*TransitionTable, error) {
	tt := &TransitionTable{
		table:   make(map[StateId]map[ClassId]StateId),
		states:  newLabels(),
		classes: newLabels(),
	}
	for _, line := range splitSpecLines(text) {
		if len(line.fields) != 3 {
			return nil, line.error(cfg.transitionSource, line.fields[0].column, "expected 'From => Class | ... => To'", nil)
		}
		from, classes, to := line.fields[0], line.fields[1], line.fields[2]
		if to.text == "" {
			return nil, line.error(cfg.transitionSource, to.column, "missing target state", nil)
		}
		fromId, err := tt.states.Intern(from.text)
		if err != nil {
			return nil, line.error(cfg.transitionSource, from.column, "invalid state name", err)
		}
		toId, err := tt.states.Intern(to.text)
		if err != nil {
			return nil, line.error(cfg.transitionSource, to.column, "invalid state name", err)
		}
		row, ok := tt.table[StateId(fromId)]
		if !ok {
			row = make(map[ClassId]StateId)
			tt.table[StateId(fromId)] = row
		}
		for _, class := range classes.subFields("|") {
			if class.text == "" {
				return nil, line.error(cfg.transitionSource, class.column, "missing class name", nil)
			}
			classId, err := tt.classes.Intern(class.text)
			if err != nil {
				return nil, line.error(cfg.transitionSource, class.column, "invalid class name", err)
			}
			if _, ok := row[ClassId(classId)]; !ok {
				row[ClassId(classId)] = StateId(toId)
			}
		}
	}
	return tt, nil
}

// Lookup returns the state reached from `from` on class c.
// It reports false if there is no such transition.
func (tt *TransitionTable) Lookup(from StateId, c ClassId) (StateId, bool) {
	to, ok := tt.table[from][c]
	return to, ok
}

// Next returns the state reached from `from` on class c, or StartState
// if the table has no such transition.
func (tt *TransitionTable) Next(from StateId, c ClassId) StateId {
	if to, ok := tt.table[from][c]; ok {
		return to
	}
	return StartState
}

// HasOutgoing reports whether the state has at least one transition.
func (tt *TransitionTable) HasOutgoing(s StateId) bool {
	return len(tt.table[s]) != 0
}

// States returns every state named by the specification, in first-seen order.
func (tt *TransitionTable) States() []StateId {
	var ids []StateId
	for _, id := range tt.states.Ids() {
		ids = append(ids, StateId(id))
	}
	return ids
}

// Classes returns every class named by the specification, in first-seen order.
func (tt *TransitionTable) Classes() []ClassId {
	var ids []ClassId
	for _, id := range tt.classes.Ids() {
		ids = append(ids, ClassId(id))
	}
	return ids
}

// StateName returns the name of the state.
func (tt *TransitionTable) StateName(id StateId) string {
	if id == StartState && !tt.states.Has(uint32(id)) {
		return "Start"
	}
	return tt.states.Name(uint32(id))
}

// ClassName returns the name of a class used by the specification.
func (tt *TransitionTable) ClassName(id ClassId) string {
	return tt.classes.Name(uint32(id))
}

// Len returns the number of registered (state, class) pairs.
func (tt *TransitionTable) Len() int {
	n := 0
	for _, row := range tt.table {
		n += len(row)
	}
	return n
}
