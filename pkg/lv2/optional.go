package lv2

import "reflect"

// Optional holds a descriptor slot that a plugin may or may not implement.
// The zero value is absent.
type Optional[F any] struct {
	fn      F
	present bool
}

// Some returns a present slot. A nil function yields an absent slot.
func Some[F any](fn F) Optional[F] {
	if isNilFunc(fn) {
		return Optional[F]{}
	}
	return Optional[F]{fn: fn, present: true}
}

// None returns an absent slot.
func None[F any]() Optional[F] {
	return Optional[F]{}
}

// Get returns the slot function and whether it is present.
func (o Optional[F]) Get() (F, bool) {
	return o.fn, o.present
}

// Present reports whether the plugin implements the slot.
func (o Optional[F]) Present() bool {
	return o.present
}

func isNilFunc(fn any) bool {
	if fn == nil {
		return true
	}
	v := reflect.ValueOf(fn)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}
