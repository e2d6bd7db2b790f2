package lilv

import "unsafe"

// Active is a token for an instance between Start and Deactivate.
// It offers a run path tied to the active state: once the token is spent,
// its Run does nothing. (*Instance).Run stays available and unchecked.
type Active struct {
	inst  *Instance
	spent bool
}

// Start activates i and returns the token for its active period.
// A nil Instance yields a token whose operations do nothing.
func (i *Instance) Start() *Active {
	i.Activate()
	return &Active{inst: i}
}

// Instance returns the underlying instance, or nil once the token is spent.
func (a *Active) Instance() *Instance {
	if a == nil || a.spent {
		return nil
	}
	return a.inst
}

// Run processes sampleCount frames. It does nothing after Deactivate.
func (a *Active) Run(sampleCount uint32) {
	a.Instance().Run(sampleCount)
}

// ConnectPort forwards to the instance; connecting while active is allowed.
func (a *Active) ConnectPort(port uint32, data unsafe.Pointer) {
	a.Instance().ConnectPort(port, data)
}

// ExtensionData forwards to the instance.
func (a *Active) ExtensionData(uri string) unsafe.Pointer {
	return a.Instance().ExtensionData(uri)
}

// Deactivate ends the active period and spends the token. It returns the
// instance for a later Start, or nil when the token was already spent.
func (a *Active) Deactivate() *Instance {
	inst := a.Instance()
	if inst == nil {
		return nil
	}
	inst.Deactivate()
	a.spent = true
	return inst
}
