package lv2

// Error codes reported at the loader boundary.
type Error int

const (
	ErrNilDescriptor Error = iota + 1
	ErrMissingURI
	ErrMissingConnectPort
	ErrMissingRun
)

func (e Error) Error() string {
	switch e {
	case ErrNilDescriptor:
		return "lv2: nil descriptor"
	case ErrMissingURI:
		return "lv2: descriptor has no URI"
	case ErrMissingConnectPort:
		return "lv2: descriptor lacks mandatory connect_port"
	case ErrMissingRun:
		return "lv2: descriptor lacks mandatory run"
	default:
		return "lv2: unknown error"
	}
}
