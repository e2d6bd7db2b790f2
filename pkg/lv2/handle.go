package lv2

// Handle is the opaque token a plugin issues for one instantiation.
// Hosts must not interpret it; they only pass it back into descriptor slots.
// The zero Handle means "no instance".
type Handle struct {
	token uintptr
}

// NewHandle wraps a plugin-chosen token. Only the issuing plugin should call it.
func NewHandle(token uintptr) Handle {
	return Handle{token: token}
}

// Token returns the plugin-chosen token. Only the issuing plugin should call it.
func (h Handle) Token() uintptr {
	return h.token
}

// IsZero reports whether h is the empty handle.
func (h Handle) IsZero() bool {
	return h.token == 0
}
