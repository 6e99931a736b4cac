package saver

import "github.com/gogpu/saver/internal/parallel"

// Renderer evaluates an effect for every pixel of a Pixmap using a pool of
// worker goroutines. Each worker owns a disjoint band of rows, and effects
// are pure, so no locking is involved.
//
// Example:
//
//	r := saver.NewRenderer(0)
//	defer r.Close()
//	pm := saver.NewPixmap(640, 360)
//	r.Render(effect, saver.NewFrameContext(t, 1920, 1080), pm)
type Renderer struct {
	pool *parallel.WorkerPool
}

// NewRenderer creates a renderer with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewRenderer(workers int) *Renderer {
	return &Renderer{pool: parallel.NewWorkerPool(workers)}
}

// Workers returns the number of worker goroutines.
func (r *Renderer) Workers() int {
	return r.pool.Workers()
}

// Render fills pm with e evaluated at ctx. Pixel (x, y) is sampled at
// PixelUV(x, y, pm.Width(), pm.Height()); the viewport in ctx may differ
// from the pixmap size, as for a downscaled preview.
func (r *Renderer) Render(e Effect, ctx FrameContext, pm *Pixmap) {
	w, h := pm.Width(), pm.Height()
	bands := parallel.Bands(h, r.pool.Workers()*2)

	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() {
			renderRows(e, ctx, pm, b.Start, b.End, w, h)
		}
	}
	r.pool.ExecuteAll(work)
}

// Close stops the worker goroutines. A closed renderer still renders, on
// the calling goroutine.
func (r *Renderer) Close() {
	r.pool.Close()
}

// RenderSerial fills pm on the calling goroutine.
func RenderSerial(e Effect, ctx FrameContext, pm *Pixmap) {
	renderRows(e, ctx, pm, 0, pm.Height(), pm.Width(), pm.Height())
}

func renderRows(e Effect, ctx FrameContext, pm *Pixmap, y0, y1, w, h int) {
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			pm.SetPixel(x, y, Sample(e, ctx, PixelUV(x, y, w, h)))
		}
	}
}
