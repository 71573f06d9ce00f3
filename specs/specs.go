// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package specs embeds the default class and transition specifications.
package specs

import (
	_ "embed"
)

//go:embed brown.classes
var classes string

//go:embed brown.transitions
var transitions string

// Classes returns the default class specification.
func Classes() string {
	return classes
}

// Transitions returns the default transition specification.
func Transitions() string {
	return transitions
}
