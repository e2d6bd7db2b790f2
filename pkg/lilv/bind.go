package lilv

import (
	"fmt"

	"github.com/justyntemme/lv2go/pkg/framework/debug"
	"github.com/justyntemme/lv2go/pkg/lv2"
)

type bindOptions struct {
	logger *debug.Logger
}

// BindOption configures Bind.
type BindOption func(*bindOptions)

// WithLogger sends Bind's diagnostics to l instead of the default logger.
func WithLogger(l *debug.Logger) BindOption {
	return func(o *bindOptions) {
		o.logger = l
	}
}

// Bind is NewInstance for loaders: it refuses a descriptor missing its URI,
// connect_port, or run, logging the fault before returning it. The returned
// error matches the lv2.Err* codes with errors.Is.
func Bind(d *lv2.Descriptor, h lv2.Handle, opts ...BindOption) (*Instance, error) {
	o := bindOptions{logger: debug.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := d.Validate(); err != nil {
		uri := "<nil>"
		if d != nil {
			uri = d.URI
		}
		o.logger.Error("malformed descriptor %q: %v", uri, err)
		return nil, fmt.Errorf("bind %q: %w", uri, err)
	}

	o.logger.Debug("bound %s (activate=%t deactivate=%t extension_data=%t)",
		d.URI, d.Activate.Present(), d.Deactivate.Present(), d.ExtensionData.Present())
	return NewInstance(d, h), nil
}
