package lv2

import (
	"errors"
	"unsafe"
)

// Slot signatures of the descriptor table.
type (
	// ConnectPortFunc binds host memory to a port. The location stays owned by the host.
	ConnectPortFunc func(h Handle, port uint32, data unsafe.Pointer)

	// RunFunc processes one block of sampleCount frames.
	RunFunc func(h Handle, sampleCount uint32)

	// ActivateFunc resets all plugin state except port connections.
	ActivateFunc func(h Handle)

	// DeactivateFunc ends the active state.
	DeactivateFunc func(h Handle)

	// ExtensionDataFunc returns the plugin's data for an extension URI, or nil.
	// The result is shared, owned by the plugin, and must not be modified.
	ExtensionDataFunc func(uri string) unsafe.Pointer
)

// Descriptor is the table of entry points for one plugin type.
// It is shared by every instance of that type and immutable once published.
type Descriptor struct {
	// URI identifies the plugin type.
	URI string

	// ConnectPort and Run are mandatory.
	ConnectPort ConnectPortFunc
	Run         RunFunc

	Activate      Optional[ActivateFunc]
	Deactivate    Optional[DeactivateFunc]
	ExtensionData Optional[ExtensionDataFunc]
}

// Validate reports every mandatory piece missing from d.
// Loaders call it before handing instances to a host; the call-through
// adapter itself never requires it.
func (d *Descriptor) Validate() error {
	if d == nil {
		return ErrNilDescriptor
	}

	var errs []error
	if d.URI == "" {
		errs = append(errs, ErrMissingURI)
	}
	if d.ConnectPort == nil {
		errs = append(errs, ErrMissingConnectPort)
	}
	if d.Run == nil {
		errs = append(errs, ErrMissingRun)
	}
	return errors.Join(errs...)
}
