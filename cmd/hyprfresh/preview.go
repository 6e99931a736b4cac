package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/saver"
)

// upperHalfBlock draws the top pixel in the foreground color and the bottom
// pixel in the background color, giving square pixels on most terminals.
const upperHalfBlock = '▀'

type previewOptions struct {
	fps      uint32
	duration time.Duration
	scale    float64 // physical pixels per half-cell
	opacity  float64 // blend toward black, 1 = fully opaque
}

// runPreview renders e into the terminal until a key is pressed or the
// duration elapses.
func runPreview(r *saver.Renderer, e saver.Effect, o previewOptions) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	quit := make(chan struct{})
	go func() {
		defer close(quit)
		for {
			switch screen.PollEvent().(type) {
			case nil, *tcell.EventKey:
				return
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	fps := o.fps
	if fps == 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var deadline <-chan time.Time
	if o.duration > 0 {
		timer := time.NewTimer(o.duration)
		defer timer.Stop()
		deadline = timer.C
	}

	start := time.Now()
	var pm *saver.Pixmap
	frames := 0
	for {
		select {
		case <-quit:
			saver.Logger().Debug("preview stopped by key", "frames", frames)
			return nil
		case <-deadline:
			saver.Logger().Info("duration elapsed, shutting down", "duration", o.duration, "frames", frames)
			return nil
		case <-ticker.C:
			w, h := screen.Size()
			if w <= 0 || h <= 0 {
				continue
			}
			if pm == nil || pm.Width() != w || pm.Height() != h*2 {
				pm = saver.NewPixmap(w, h*2)
			}
			ctx := saver.NewFrameContext(time.Since(start).Seconds(), float64(w)*o.scale, float64(h*2)*o.scale)
			r.Render(e, ctx, pm)
			drawHalfBlocks(screen, pm, o.opacity)
			screen.Show()
			frames++
		}
	}
}

// drawHalfBlocks copies pm into screen, two pixel rows per terminal row.
func drawHalfBlocks(screen tcell.Screen, pm *saver.Pixmap, opacity float64) {
	data := pm.Data()
	w := pm.Width()
	for y := 0; y+1 < pm.Height(); y += 2 {
		for x := 0; x < w; x++ {
			top := cellColor(data, (y*w+x)*4, opacity)
			bottom := cellColor(data, ((y+1)*w+x)*4, opacity)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			screen.SetContent(x, y/2, upperHalfBlock, nil, style)
		}
	}
}

var black = colorful.Color{}

// cellColor reads the pixel at byte offset i and fades it toward black by
// opacity, the way the compositor would over a black output.
func cellColor(data []uint8, i int, opacity float64) tcell.Color {
	c := colorful.Color{
		R: float64(data[i]) / 255,
		G: float64(data[i+1]) / 255,
		B: float64(data[i+2]) / 255,
	}
	if opacity < 1 {
		c = black.BlendRgb(c, max(opacity, 0))
	}
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
