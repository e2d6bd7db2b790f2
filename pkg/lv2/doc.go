// Package lv2 defines the host-side vocabulary of the LV2 plugin ABI: the
// descriptor table of plugin entry points, the opaque per-instance handle,
// and the present/absent wrapper used for optional descriptor slots.
//
// Nothing in this package calls into a plugin. See package lilv for the
// guarded call-through adapter built on these types.
package lv2
