// Package lilvtest provides a recording plugin for testing LV2 hosts.
package lilvtest

import (
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/lv2"
)

// Op names a descriptor slot.
type Op string

const (
	OpConnectPort   Op = "connect_port"
	OpActivate      Op = "activate"
	OpRun           Op = "run"
	OpDeactivate    Op = "deactivate"
	OpExtensionData Op = "extension_data"
)

// Call is one recorded slot invocation.
type Call struct {
	Op      Op
	Handle  lv2.Handle
	Port    uint32
	Data    unsafe.Pointer
	Samples uint32
	URI     string

	// Ports is a copy of the bindings at the time of a run call.
	Ports map[uint32]unsafe.Pointer
}

// Option removes slots from the recorder's descriptor.
type Option func(*Recorder)

// WithoutActivate leaves the activate slot absent.
func WithoutActivate() Option { return func(r *Recorder) { r.noActivate = true } }

// WithoutDeactivate leaves the deactivate slot absent.
func WithoutDeactivate() Option { return func(r *Recorder) { r.noDeactivate = true } }

// WithoutExtensionData leaves the extension_data slot absent.
func WithoutExtensionData() Option { return func(r *Recorder) { r.noExtensionData = true } }

// WithoutRun leaves the mandatory run slot nil.
func WithoutRun() Option { return func(r *Recorder) { r.noRun = true } }

// WithoutConnectPort leaves the mandatory connect_port slot nil.
func WithoutConnectPort() Option { return func(r *Recorder) { r.noConnectPort = true } }

// MandatoryOnly keeps only connect_port and run.
func MandatoryOnly() Option {
	return func(r *Recorder) {
		r.noActivate = true
		r.noDeactivate = true
		r.noExtensionData = true
	}
}

// Recorder is a plugin double that stores port bindings and logs every call.
// It is not safe for concurrent use.
type Recorder struct {
	uri        string
	ports      map[uint32]unsafe.Pointer
	extensions map[string]unsafe.Pointer
	calls      []Call

	noActivate      bool
	noDeactivate    bool
	noExtensionData bool
	noRun           bool
	noConnectPort   bool
}

// NewRecorder returns a recorder identifying itself as uri.
func NewRecorder(uri string, opts ...Option) *Recorder {
	r := &Recorder{
		uri:        uri,
		ports:      make(map[uint32]unsafe.Pointer),
		extensions: make(map[string]unsafe.Pointer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Provide registers data to return for an extension URI.
func (r *Recorder) Provide(uri string, data unsafe.Pointer) {
	r.extensions[uri] = data
}

// Descriptor builds a fresh descriptor whose slots record into r.
func (r *Recorder) Descriptor() *lv2.Descriptor {
	d := &lv2.Descriptor{URI: r.uri}
	if !r.noConnectPort {
		d.ConnectPort = r.connectPort
	}
	if !r.noRun {
		d.Run = r.run
	}
	if !r.noActivate {
		d.Activate = lv2.Some[lv2.ActivateFunc](r.activate)
	}
	if !r.noDeactivate {
		d.Deactivate = lv2.Some[lv2.DeactivateFunc](r.deactivate)
	}
	if !r.noExtensionData {
		d.ExtensionData = lv2.Some[lv2.ExtensionDataFunc](r.extensionData)
	}
	return d
}

// Port returns the location most recently connected to port.
func (r *Recorder) Port(port uint32) (unsafe.Pointer, bool) {
	data, ok := r.ports[port]
	return data, ok
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []Call {
	return append([]Call(nil), r.calls...)
}

// Ops returns the recorded slot names in order.
func (r *Recorder) Ops() []Op {
	ops := make([]Op, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.Op
	}
	return ops
}

// Runs returns only the run calls.
func (r *Recorder) Runs() []Call {
	var runs []Call
	for _, c := range r.calls {
		if c.Op == OpRun {
			runs = append(runs, c)
		}
	}
	return runs
}

// Reset forgets recorded calls but keeps port bindings.
func (r *Recorder) Reset() {
	r.calls = nil
}

func (r *Recorder) connectPort(h lv2.Handle, port uint32, data unsafe.Pointer) {
	r.ports[port] = data
	r.calls = append(r.calls, Call{Op: OpConnectPort, Handle: h, Port: port, Data: data})
}

func (r *Recorder) run(h lv2.Handle, sampleCount uint32) {
	snapshot := make(map[uint32]unsafe.Pointer, len(r.ports))
	for port, data := range r.ports {
		snapshot[port] = data
	}
	r.calls = append(r.calls, Call{Op: OpRun, Handle: h, Samples: sampleCount, Ports: snapshot})
}

func (r *Recorder) activate(h lv2.Handle) {
	r.calls = append(r.calls, Call{Op: OpActivate, Handle: h})
}

func (r *Recorder) deactivate(h lv2.Handle) {
	r.calls = append(r.calls, Call{Op: OpDeactivate, Handle: h})
}

func (r *Recorder) extensionData(uri string) unsafe.Pointer {
	r.calls = append(r.calls, Call{Op: OpExtensionData, URI: uri})
	return r.extensions[uri]
}
