//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // registers the Vulkan backend

	"github.com/gogpu/saver"
	"github.com/gogpu/saver/shader"
)

// Device is an opened GPU device and its queue.
type Device struct {
	instance hal.Instance // nil when the device is borrowed
	device   hal.Device
	queue    hal.Queue
	name     string
}

// Open creates a Vulkan instance and opens the first discrete or integrated
// GPU, or the first adapter when there is neither. It wraps ErrUnavailable
// when no adapter can be opened.
func Open() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrUnavailable)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %v", ErrUnavailable, err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no GPU adapters found", ErrUnavailable)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open device: %v", ErrUnavailable, err)
	}
	saver.Logger().Debug("gpu: device opened", "adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		name:     selected.Info.Name,
	}, nil
}

// NewDevice wraps a device and queue owned by the caller. Close leaves them
// open.
func NewDevice(device hal.Device, queue hal.Queue) *Device {
	return &Device{device: device, queue: queue}
}

// FromProvider borrows the device of a host that already has one, such as
// a windowed compositor client. provider must have the methods
//
//	HalDevice() any
//	HalQueue() any
//
// returning a hal.Device and a hal.Queue.
func FromProvider(provider any) (*Device, error) {
	hp, ok := provider.(interface {
		HalDevice() any
		HalQueue() any
	})
	if !ok {
		return nil, fmt.Errorf("gpu: %T does not provide a HAL device", provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: %T: HalDevice is not a hal.Device", provider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: %T: HalQueue is not a hal.Queue", provider)
	}
	return NewDevice(device, queue), nil
}

// Name returns the adapter name, or "" for a borrowed device.
func (d *Device) Name() string {
	return d.name
}

// Close destroys the device if Open created it.
func (d *Device) Close() {
	if d.instance == nil {
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	d.instance.Destroy()
	d.instance = nil
}

// Render draws one frame of mod with uniforms u into pm.
//
// Each call builds and releases its own pipeline; hosts drawing many frames
// of one module keep a Renderer instead.
func (d *Device) Render(mod *shader.Module, u shader.Uniforms, pm *saver.Pixmap) error {
	r, err := NewRenderer(d.device, d.queue, mod)
	if err != nil {
		return err
	}
	defer r.Destroy()
	return r.Render(u, pm)
}
