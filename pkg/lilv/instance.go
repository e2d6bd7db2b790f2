// Package lilv is the host-side adapter over an LV2 plugin instance.
//
// Every operation is a guarded call-through into the instance's descriptor.
// A nil *Instance, a nil descriptor, and an absent slot all mean "capability
// not present": the call does nothing and returns the empty result.
//
// The adapter neither tracks nor validates the lifecycle
//
//	constructed --Activate--> active --Run--> active
//	active --Deactivate--> constructed
//
// ConnectPort is valid in either state. Use Start and the Active token when
// the lifecycle should be carried by the type system instead.
//
// An Instance is used by one goroutine at a time. Distinct instances share no
// adapter state and may be driven concurrently.
package lilv

import (
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/lv2"
)

// Instance pairs a plugin handle with its type's descriptor.
// It is created by a loader and borrowed by the host; the adapter never
// copies, owns, or frees it.
type Instance struct {
	descriptor *lv2.Descriptor
	handle     lv2.Handle
}

// NewInstance wraps a loader-produced handle. It never fails; see Bind for
// the variant that rejects malformed descriptors.
func NewInstance(d *lv2.Descriptor, h lv2.Handle) *Instance {
	return &Instance{descriptor: d, handle: h}
}

// bound is the first step of every operation.
func (i *Instance) bound() (*lv2.Descriptor, lv2.Handle, bool) {
	if i == nil || i.descriptor == nil {
		return nil, lv2.Handle{}, false
	}
	return i.descriptor, i.handle, true
}

// URI returns the plugin type's URI.
func (i *Instance) URI() (string, bool) {
	d, _, ok := i.bound()
	if !ok {
		return "", false
	}
	return d.URI, true
}

// ConnectPort points port at a host-owned location. It may be called whether
// or not the instance is active; reconnecting a port replaces only that
// port's previous location. The port index is passed through unchecked.
func (i *Instance) ConnectPort(port uint32, data unsafe.Pointer) {
	d, h, ok := i.bound()
	if !ok || d.ConnectPort == nil {
		return
	}
	d.ConnectPort(h, port, data)
}

// Activate resets all plugin state except port connections. It must precede
// the first Run, and again any Run that follows a Deactivate.
func (i *Instance) Activate() {
	d, h, ok := i.bound()
	if !ok {
		return
	}
	if activate, present := d.Activate.Get(); present {
		activate(h)
	}
}

// Run processes sampleCount frames through the connected ports.
// Calling it outside the active state is the caller's error.
// If the plugin is lv2:hardRTCapable, Run does not block.
func (i *Instance) Run(sampleCount uint32) {
	d, h, ok := i.bound()
	if !ok || d.Run == nil {
		return
	}
	d.Run(h, sampleCount)
}

// Deactivate leaves the active state. Port connections survive.
func (i *Instance) Deactivate() {
	d, h, ok := i.bound()
	if !ok {
		return
	}
	if deactivate, present := d.Deactivate.Get(); present {
		deactivate(h)
	}
}

// ExtensionData returns the plugin's data for an extension URI, or nil.
// The pointee's type is defined by the extension. It is owned by the plugin,
// outlives the instance, and must not be freed or modified.
func (i *Instance) ExtensionData(uri string) unsafe.Pointer {
	d, _, ok := i.bound()
	if !ok {
		return nil
	}
	if extensionData, present := d.ExtensionData.Get(); present {
		return extensionData(uri)
	}
	return nil
}

// Descriptor returns the raw descriptor. Hosts should not normally need it.
func (i *Instance) Descriptor() *lv2.Descriptor {
	if i == nil {
		return nil
	}
	return i.descriptor
}

// Handle returns the raw plugin handle, or the zero Handle for a nil
// Instance. The handle is shared and must not be freed.
func (i *Instance) Handle() lv2.Handle {
	if i == nil {
		return lv2.Handle{}
	}
	return i.handle
}
