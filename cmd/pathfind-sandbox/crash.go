package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// crashGuard restores the terminal before reporting a panic from any sandbox goroutine
type crashGuard struct {
	screen tcell.Screen
}

func (c crashGuard) handle(r any) {
	if r == nil {
		return
	}
	if c.screen != nil {
		c.screen.Fini()
	}
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSANDBOX CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

// Go runs fn on a new goroutine with panic recovery; matches engine.FrameLoop.Start
func (c crashGuard) Go(fn func()) {
	go func() {
		defer func() { c.handle(recover()) }()
		fn()
	}()
}
