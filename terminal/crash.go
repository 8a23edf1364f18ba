package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var (
	crashMu    sync.Mutex
	crashHooks []func()

	// exit is swapped in tests
	exit = os.Exit
)

// OnCrash registers fn to run after the crash report and before the process exits
// Hooks run in reverse registration order; a panicking hook does not stop the rest
func OnCrash(fn func()) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashHooks = append(crashHooks, fn)
}

// HandleCrash restores the terminal, prints the panic with its stack, runs crash hooks and exits
func HandleCrash(screen tcell.Screen, label string, r any) {
	if screen != nil {
		screen.Fini()
	}
	os.Stdout.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", label, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	runCrashHooks()
	exit(1)
}

func runCrashHooks() {
	crashMu.Lock()
	hooks := crashHooks
	crashHooks = nil
	crashMu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "crash hook failed: %v\r\n", r)
				}
			}()
			hooks[i]()
		}()
	}
}

// Recover is deferred at the top of a goroutine to route panics through HandleCrash
func Recover(screen tcell.Screen, label string) {
	if r := recover(); r != nil {
		HandleCrash(screen, label, r)
	}
}

// Go runs fn in a new goroutine with crash handling
func Go(screen tcell.Screen, label string, fn func()) {
	go func() {
		defer Recover(screen, label)
		fn()
	}()
}
