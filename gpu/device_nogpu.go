//go:build nogpu

package gpu

import (
	"github.com/gogpu/saver"
	"github.com/gogpu/saver/shader"
)

// Device is a stub; this build has no GPU support.
type Device struct{}

// Open always fails in builds tagged nogpu.
func Open() (*Device, error) { return nil, ErrUnavailable }

// Name returns an empty string.
func (d *Device) Name() string { return "" }

// Close does nothing.
func (d *Device) Close() {}

// Render always fails in builds tagged nogpu.
func (d *Device) Render(*shader.Module, shader.Uniforms, *saver.Pixmap) error {
	return ErrUnavailable
}
