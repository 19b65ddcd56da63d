package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"minibrowse/pkg/config"
	"minibrowse/pkg/render"
	"minibrowse/pkg/resource"
)

// viewer owns the current page and scroll position. Loads run off the UI
// goroutine one at a time and hand their results to the UI with fyne.Do.
type viewer struct {
	cfg     config.Config
	logger  *zap.Logger
	browser *resource.Browser

	mu     sync.Mutex
	page   *resource.Page
	scroll float64

	window fyne.Window
	image  *canvas.Image
	status *widget.Label
}

func (v *viewer) load(url string) {
	go func() {
		fyne.Do(func() { v.status.SetText("Loading " + url + "...") })
		v.mu.Lock()
		defer v.mu.Unlock()

		page, err := v.browser.Load(url)
		if err != nil {
			v.logger.Warn("load failed", zap.String("url", url), zap.Error(err))
			fyne.Do(func() { v.status.SetText("Error: " + err.Error()) })
			return
		}
		v.page = page
		v.scroll = 0
		frame := v.draw()
		title := page.Title()
		if title == "" {
			title = page.URL.String()
		}
		fyne.Do(func() {
			v.show(frame)
			v.status.SetText(page.URL.String())
			v.window.SetTitle(fmt.Sprintf("minibrowse - %s", title))
		})
	}()
}

// scrollBy moves the viewport, clamped to the page, and redraws. It runs
// on the UI goroutine, so it skips the scroll while a load holds mu.
func (v *viewer) scrollBy(delta float64) {
	if !v.mu.TryLock() {
		return
	}
	defer v.mu.Unlock()
	if v.page == nil {
		return
	}
	v.scroll = clampScroll(v.scroll+delta, v.page.Height+2*v.cfg.Page.VStep, float64(v.cfg.Viewport.Height))
	v.show(v.draw())
}

// clampScroll keeps the viewport inside a document of the given height.
func clampScroll(scroll, docHeight, viewHeight float64) float64 {
	return min(max(0, scroll), max(0, docHeight-viewHeight))
}

// draw rasterises the current page; the caller holds mu.
func (v *viewer) draw() *image.RGBA {
	target := image.NewRGBA(image.Rect(0, 0, v.cfg.Viewport.Width, v.cfg.Viewport.Height))
	r := render.NewRendererForImage(target, render.WithLogger(v.logger))
	r.Render(v.page.DisplayList, v.scroll)
	return target
}

func (v *viewer) show(frame *image.RGBA) {
	v.image.Image = frame
	v.image.Refresh()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	a := app.New()
	w := a.NewWindow("minibrowse")
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height+80)))

	blank := image.NewRGBA(image.Rect(0, 0, cfg.Viewport.Width, cfg.Viewport.Height))
	img := canvas.NewImageFromImage(blank)
	img.FillMode = canvas.ImageFillOriginal

	v := &viewer{
		cfg:     cfg,
		logger:  logger,
		browser: resource.NewBrowserFromConfig(cfg, logger),
		window:  w,
		image:   img,
		status:  widget.NewLabel("Enter a URL and press Enter"),
	}

	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder(cfg.FallbackURL)
	urlEntry.OnSubmitted = func(url string) {
		if url == "" {
			url = cfg.FallbackURL
		}
		// hand the arrow keys back to the canvas for scrolling
		w.Canvas().Unfocus()
		v.load(url)
	}

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDown:
			v.scrollBy(cfg.ScrollStep)
		case fyne.KeyUp:
			v.scrollBy(-cfg.ScrollStep)
		}
	})

	topBar := container.NewBorder(nil, nil, nil, nil, urlEntry)
	w.SetContent(container.NewBorder(topBar, v.status, nil, nil, img))

	initial := cfg.FallbackURL
	if flag.NArg() > 0 {
		initial = flag.Arg(0)
	}
	urlEntry.SetText(initial)
	v.load(initial)

	w.ShowAndRun()
}
