package notify

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// ErrUnavailable indicates an output device cannot be used on this system.
var ErrUnavailable = errors.New("notification unavailable")

// DefaultBannerDuration is how long a banner stays visible.
const DefaultBannerDuration = 5 * time.Second

// Kind selects the message shown when a phase ends.
type Kind int

const (
	// KindBreak announces the end of a focus phase.
	KindBreak Kind = iota
	// KindWork announces the end of a break.
	KindWork
)

// Title returns the headline for the kind.
func (kind Kind) Title() string {
	if kind == KindWork {
		return "Break over!"
	}
	return "Great job!"
}

// Message returns the body text for the kind.
func (kind Kind) Message() string {
	if kind == KindWork {
		return "Ready to focus? 💪"
	}
	return "Time for a break 🎉"
}

// Banner is an in-app transient message surface.
type Banner interface {
	Show(title, message string, kind Kind)
	Hide()
}

// Desktop sends OS-level notifications.
type Desktop interface {
	Send(title, body string) error
}

// Tone plays a short audible cue.
type Tone interface {
	Play() error
}

// Options contains the output devices and timing for a Notifier.
type Options struct {
	Banner         Banner
	Desktop        Desktop
	Tone           Tone
	Permission     model.NotificationPermission
	BannerDuration time.Duration
	// AfterFunc schedules fn and returns a function that cancels it.
	AfterFunc func(d time.Duration, fn func()) (stop func() bool)
}

// Notifier fans a phase completion out to the banner, the desktop and the speaker.
// None of its outputs can fail the caller.
type Notifier struct {
	mu       sync.Mutex
	options  Options
	stopHide func() bool
}

// New creates a Notifier. Nil devices are skipped.
func New(options Options) *Notifier {
	if options.BannerDuration <= 0 {
		options.BannerDuration = DefaultBannerDuration
	}
	if options.AfterFunc == nil {
		options.AfterFunc = func(d time.Duration, fn func()) func() bool {
			return time.AfterFunc(d, fn).Stop
		}
	}
	if options.Permission == "" {
		options.Permission = model.PermissionDefault
	}
	return &Notifier{options: options}
}

// SetPermission updates the OS notification grant.
func (notifier *Notifier) SetPermission(permission model.NotificationPermission) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.options.Permission = permission
}

// Permission returns the current OS notification grant.
func (notifier *Notifier) Permission() model.NotificationPermission {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.options.Permission
}

// Notify shows the banner, then tries the desktop notification and the tone.
func (notifier *Notifier) Notify(kind Kind) {
	title, message := kind.Title(), kind.Message()

	notifier.mu.Lock()
	options := notifier.options
	if notifier.stopHide != nil {
		notifier.stopHide()
		notifier.stopHide = nil
	}
	if options.Banner != nil {
		options.Banner.Show(title, message, kind)
		notifier.stopHide = options.AfterFunc(options.BannerDuration, options.Banner.Hide)
	}
	notifier.mu.Unlock()

	if options.Desktop != nil && options.Permission == model.PermissionGranted {
		guard("desktop notification", func() error {
			return options.Desktop.Send(title, message)
		})
	}
	if options.Tone != nil {
		guard("tone", options.Tone.Play)
	}
}

// guard runs an optional output and logs instead of propagating failures.
func guard(name string, fn func() error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("notify: %s: %v", name, fmt.Errorf("%w: panic: %v", ErrUnavailable, recovered))
		}
	}()
	if err := fn(); err != nil {
		log.Printf("notify: %s: %v", name, err)
	}
}

// Asker prompts the user for permission to send OS notifications.
type Asker func() (bool, error)

// ResolvePermission asks only while the permission is undecided.
// It returns the resulting permission and whether it changed and should be persisted.
func ResolvePermission(current model.NotificationPermission, ask Asker) (model.NotificationPermission, bool) {
	if current == model.PermissionGranted || current == model.PermissionDenied {
		return current, false
	}
	if ask == nil {
		return model.PermissionDefault, false
	}
	allowed, err := ask()
	if err != nil {
		log.Printf("notify: permission prompt: %v", err)
		return model.PermissionDefault, false
	}
	if allowed {
		return model.PermissionGranted, true
	}
	return model.PermissionDenied, true
}
