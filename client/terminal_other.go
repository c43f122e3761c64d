// File: client/terminal_other.go

//go:build !linux

package main

// terminal is a no-op outside Linux; input stays line buffered.
type terminal struct{}

func makeRaw(uintptr) (*terminal, error) { return &terminal{}, nil }

func (t *terminal) restore() {}
