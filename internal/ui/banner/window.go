package banner

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"pomodoro/internal/notify"
)

const (
	bannerWidthFraction  = float32(0.18)
	bannerHeightFraction = float32(0.10)
	defaultScreenWidth   = float32(1920)
	defaultScreenHeight  = float32(1080)
	bannerOpacity        = uint8(230)
)

var (
	breakAccent = color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	workAccent  = color.NRGBA{R: 229, G: 57, B: 53, A: 255}
	textColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window is the transient message shown when a phase ends.
type Window struct {
	window       fyne.Window
	background   *canvas.Rectangle
	accent       *canvas.Rectangle
	titleLabel   *canvas.Text
	messageLabel *canvas.Text
}

// New creates a hidden banner window.
func New(app fyne.App) *Window {
	window := app.NewWindow("Pomodoro")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: bannerOpacity})
	accent := canvas.NewRectangle(breakAccent)

	titleLabel := canvas.NewText("", textColor)
	titleLabel.Alignment = fyne.TextAlignLeading
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	messageLabel := canvas.NewText("", textColor)
	messageLabel.Alignment = fyne.TextAlignLeading
	messageLabel.TextSize = 15

	content := container.New(&bannerLayout{}, accent, titleLabel, messageLabel)
	window.SetContent(container.NewStack(background, content))

	return &Window{
		window:       window,
		background:   background,
		accent:       accent,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
	}
}

// Show displays the message. Safe to call from any goroutine.
func (banner *Window) Show(title, message string, kind notify.Kind) {
	fyne.Do(func() {
		banner.showUnsafe(title, message, kind)
	})
}

// Hide dismisses the banner. Safe to call from any goroutine.
func (banner *Window) Hide() {
	fyne.Do(func() {
		banner.window.Hide()
	})
}

func (banner *Window) showUnsafe(title, message string, kind notify.Kind) {
	banner.titleLabel.Text = title
	banner.messageLabel.Text = message
	banner.accent.FillColor = accentFor(kind)
	banner.titleLabel.Refresh()
	banner.messageLabel.Refresh()
	canvas.Refresh(banner.accent)

	banner.resizeToScreenFraction()
	banner.window.Show()
}

func accentFor(kind notify.Kind) color.Color {
	if kind == notify.KindWork {
		return workAccent
	}
	return breakAccent
}

func (banner *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := banner.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * bannerWidthFraction
	height := screenSize.Height * bannerHeightFraction
	minSize := banner.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	banner.window.Resize(fyne.NewSize(width, height))
	banner.window.CenterOnScreen()
}

// bannerLayout stacks an accent stripe on the left of the title and message.
type bannerLayout struct{}

const accentWidth = float32(6)

func (layout *bannerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	accent, title, message := objects[0], objects[1], objects[2]

	accent.Move(fyne.NewPos(0, 0))
	accent.Resize(fyne.NewSize(accentWidth, size.Height))

	pad := size.Height * 0.12
	left := accentWidth + pad
	availableWidth := size.Width - left - pad
	if availableWidth < 0 {
		availableWidth = 0
	}

	titleSize := title.MinSize()
	messageSize := message.MinSize()
	top := (size.Height - titleSize.Height - messageSize.Height - 6) / 2
	if top < 0 {
		top = 0
	}

	title.Move(fyne.NewPos(left, top))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))
	message.Move(fyne.NewPos(left, top+titleSize.Height+6))
	message.Resize(fyne.NewSize(availableWidth, messageSize.Height))
}

func (layout *bannerLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	titleSize := objects[1].MinSize()
	messageSize := objects[2].MinSize()

	width := titleSize.Width
	if messageSize.Width > width {
		width = messageSize.Width
	}
	return fyne.NewSize(width+accentWidth+32, titleSize.Height+messageSize.Height+26)
}
