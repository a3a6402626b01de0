package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"fyne.io/fyne/v2"
)

// FyneDesktop sends notifications through the running fyne app.
type FyneDesktop struct {
	app fyne.App
}

// NewFyneDesktop wraps app.
func NewFyneDesktop(app fyne.App) *FyneDesktop {
	return &FyneDesktop{app: app}
}

func (desktop *FyneDesktop) Send(title, body string) error {
	if desktop.app == nil {
		return ErrUnavailable
	}
	desktop.app.SendNotification(fyne.NewNotification(title, body))
	return nil
}

// CommandDesktop shells out to notify-send on Linux and osascript on macOS.
type CommandDesktop struct {
	timeout time.Duration
	goos    string
}

// NewCommandDesktop returns a desktop sender for the current OS.
func NewCommandDesktop(timeout time.Duration) *CommandDesktop {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CommandDesktop{timeout: timeout, goos: runtime.GOOS}
}

func (desktop *CommandDesktop) Send(title, body string) error {
	name, args, err := desktop.command(title, body)
	if err != nil {
		return err
	}
	if _, lookErr := exec.LookPath(name); lookErr != nil {
		return fmt.Errorf("%w: %s not found", ErrUnavailable, name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), desktop.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s timeout", name)
		}
		return fmt.Errorf("%s: %w, stderr: %s", name, err, stderr.String())
	}
	return nil
}

func (desktop *CommandDesktop) command(title, body string) (string, []string, error) {
	switch desktop.goos {
	case "linux", "freebsd", "openbsd":
		return "notify-send", []string{"--app-name=Pomodoro", title, body}, nil
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return "osascript", []string{"-e", script}, nil
	default:
		return "", nil, fmt.Errorf("%w: no notifier for %s", ErrUnavailable, desktop.goos)
	}
}

// escapeAppleScript escapes characters that would end an AppleScript string literal.
func escapeAppleScript(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return value
}
