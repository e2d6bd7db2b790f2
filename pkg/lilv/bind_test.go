package lilv

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/lv2go/pkg/framework/debug"
	"github.com/justyntemme/lv2go/pkg/lilv/lilvtest"
	"github.com/justyntemme/lv2go/pkg/lv2"
)

func bufferLogger(buf *bytes.Buffer) *debug.Logger {
	l := debug.New(buf, "loader", debug.FlagLevel|debug.FlagPrefix)
	l.SetLevel(debug.LogLevelDebug)
	return l
}

func TestBind(t *testing.T) {
	t.Run("WellFormed", func(t *testing.T) {
		var logs bytes.Buffer
		rec := lilvtest.NewRecorder(testURI, lilvtest.WithoutDeactivate())

		inst, err := Bind(rec.Descriptor(), lv2.NewHandle(1), WithLogger(bufferLogger(&logs)))
		require.NoError(t, err)
		require.NotNil(t, inst)

		uri, ok := inst.URI()
		assert.True(t, ok)
		assert.Equal(t, testURI, uri)
		assert.Contains(t, logs.String(), "[DEBUG]")
		assert.Contains(t, logs.String(), "deactivate=false")
	})

	t.Run("MissingRun", func(t *testing.T) {
		var logs bytes.Buffer
		rec := lilvtest.NewRecorder(testURI, lilvtest.WithoutRun())

		inst, err := Bind(rec.Descriptor(), lv2.NewHandle(1), WithLogger(bufferLogger(&logs)))
		require.Error(t, err)
		assert.Nil(t, inst)
		assert.True(t, errors.Is(err, lv2.ErrMissingRun))
		assert.False(t, errors.Is(err, lv2.ErrMissingConnectPort))
		assert.Contains(t, err.Error(), testURI)
		assert.Contains(t, logs.String(), "[ERROR]")
	})

	t.Run("MissingBothMandatorySlots", func(t *testing.T) {
		rec := lilvtest.NewRecorder(testURI, lilvtest.WithoutRun(), lilvtest.WithoutConnectPort())

		_, err := Bind(rec.Descriptor(), lv2.NewHandle(1), WithLogger(debug.Discard()))
		assert.True(t, errors.Is(err, lv2.ErrMissingRun))
		assert.True(t, errors.Is(err, lv2.ErrMissingConnectPort))
	})

	t.Run("NilDescriptor", func(t *testing.T) {
		var logs bytes.Buffer
		_, err := Bind(nil, lv2.Handle{}, WithLogger(bufferLogger(&logs)))
		assert.True(t, errors.Is(err, lv2.ErrNilDescriptor))
		assert.Contains(t, logs.String(), "<nil>")
	})

	t.Run("LenientConstructorAcceptsMalformed", func(t *testing.T) {
		rec := lilvtest.NewRecorder(testURI, lilvtest.WithoutRun())
		inst := NewInstance(rec.Descriptor(), lv2.NewHandle(1))
		assert.NotPanics(t, func() { inst.Run(8) })
	})
}
