package shell

import (
	"fmt"
	"io"
	"sync"

	"pomodoro/internal/notify"
)

// Console serializes writes from the prompt loop and the notifier.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole wraps out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Printf writes a formatted line.
func (console *Console) Printf(format string, args ...any) {
	console.mu.Lock()
	defer console.mu.Unlock()
	fmt.Fprintf(console.out, format, args...)
}

// Show prints the banner as a single line. It satisfies notify.Banner.
func (console *Console) Show(title, message string, kind notify.Kind) {
	marker := "🍅"
	if kind == notify.KindBreak {
		marker = "☕"
	}
	console.Printf("\n%s %s %s\n", marker, title, message)
}

// Hide is a no-op; printed banners scroll away on their own.
func (console *Console) Hide() {}
