// Package amp is an in-process LV2 plugin: a mono amplifier whose gain is
// a control port in decibels. Run leaves the output untouched unless the
// instance is active. It implements every descriptor slot and
// offers a peak-meter extension, which makes it a complete target for
// exercising hosts.
package amp

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/dsp/gain"
	"github.com/justyntemme/lv2go/pkg/lv2"
)

const (
	// URI identifies the plugin type.
	URI = "http://lv2plug.in/plugins/eg-amp"

	// MeterURI is the extension whose data is a *MeterInterface.
	MeterURI = "http://lv2go.dev/ns/ext/meter#interface"
)

// Port indices.
const (
	PortGain   uint32 = iota // control input, dB, one float32
	PortInput                // audio input, float32 frames
	PortOutput               // audio output, float32 frames
)

// MeterInterface is the extension data behind MeterURI.
type MeterInterface struct {
	// Peak returns the largest absolute output sample since the last activation.
	Peak func(h lv2.Handle) float32
}

type amp struct {
	sampleRate float64

	gain   *float32
	input  *float32
	output *float32

	coef   float32
	primed bool
	peak   float32
	active bool
}

var (
	instances   = make(map[uintptr]*amp)
	instancesMu sync.RWMutex
	nextID      uintptr = 1
)

var meter = &MeterInterface{Peak: peak}

var descriptor = &lv2.Descriptor{
	URI:           URI,
	ConnectPort:   connectPort,
	Run:           run,
	Activate:      lv2.Some[lv2.ActivateFunc](activate),
	Deactivate:    lv2.Some[lv2.DeactivateFunc](deactivate),
	ExtensionData: lv2.Some[lv2.ExtensionDataFunc](extensionData),
}

// Descriptor returns the plugin's shared descriptor table.
func Descriptor() *lv2.Descriptor {
	return descriptor
}

// Instantiate creates an instance and returns its handle.
func Instantiate(sampleRate float64) (lv2.Handle, error) {
	if sampleRate <= 0 {
		return lv2.Handle{}, fmt.Errorf("amp: invalid sample rate %v", sampleRate)
	}

	instancesMu.Lock()
	defer instancesMu.Unlock()
	id := nextID
	nextID++
	instances[id] = &amp{sampleRate: sampleRate}
	return lv2.NewHandle(id), nil
}

// Cleanup destroys the instance behind h. Later calls with h do nothing.
func Cleanup(h lv2.Handle) {
	instancesMu.Lock()
	defer instancesMu.Unlock()
	delete(instances, h.Token())
}

func lookup(h lv2.Handle) *amp {
	instancesMu.RLock()
	defer instancesMu.RUnlock()
	return instances[h.Token()]
}

func connectPort(h lv2.Handle, port uint32, data unsafe.Pointer) {
	a := lookup(h)
	if a == nil {
		return
	}
	switch port {
	case PortGain:
		a.gain = (*float32)(data)
	case PortInput:
		a.input = (*float32)(data)
	case PortOutput:
		a.output = (*float32)(data)
	}
}

func activate(h lv2.Handle) {
	a := lookup(h)
	if a == nil {
		return
	}
	a.primed = false
	a.peak = 0
	a.active = true
}

func run(h lv2.Handle, sampleCount uint32) {
	a := lookup(h)
	if a == nil || !a.active || a.gain == nil || a.input == nil || a.output == nil || sampleCount == 0 {
		return
	}

	n := int(sampleCount)
	in := unsafe.Slice(a.input, n)
	out := unsafe.Slice(a.output, n)

	target := gain.DbToLinear32(*a.gain)
	if !a.primed {
		a.coef = target
		a.primed = true
	}
	gain.RampTo(out, in, a.coef, target)
	a.coef = target

	if p := gain.Peak(out); p > a.peak {
		a.peak = p
	}
}

func deactivate(h lv2.Handle) {
	if a := lookup(h); a != nil {
		a.active = false
	}
}

func extensionData(uri string) unsafe.Pointer {
	if uri == MeterURI {
		return unsafe.Pointer(meter)
	}
	return nil
}

func peak(h lv2.Handle) float32 {
	if a := lookup(h); a != nil {
		return a.peak
	}
	return 0
}
