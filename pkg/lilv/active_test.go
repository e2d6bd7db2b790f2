package lilv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/lv2go/pkg/lilv/lilvtest"
)

func TestActiveToken(t *testing.T) {
	t.Run("FullCycle", func(t *testing.T) {
		inst, rec := newRecorded(t)
		buf := make([]float32, 8)

		active := inst.Start()
		active.ConnectPort(0, location(buf))
		active.Run(8)
		assert.Same(t, inst, active.Instance())

		back := active.Deactivate()
		assert.Same(t, inst, back)

		assert.Equal(t, []lilvtest.Op{
			lilvtest.OpActivate, lilvtest.OpConnectPort, lilvtest.OpRun, lilvtest.OpDeactivate,
		}, rec.Ops())
	})

	t.Run("SpentTokenDoesNothing", func(t *testing.T) {
		inst, rec := newRecorded(t)

		active := inst.Start()
		require.NotNil(t, active.Deactivate())
		rec.Reset()

		active.Run(8)
		active.ConnectPort(0, nil)
		assert.Nil(t, active.ExtensionData(testURI))
		assert.Nil(t, active.Deactivate())
		assert.Nil(t, active.Instance())
		assert.Empty(t, rec.Calls())
	})

	t.Run("Restart", func(t *testing.T) {
		inst, rec := newRecorded(t)

		inst.Start().Deactivate().Start().Run(4)

		assert.Equal(t, []lilvtest.Op{
			lilvtest.OpActivate, lilvtest.OpDeactivate, lilvtest.OpActivate, lilvtest.OpRun,
		}, rec.Ops())
	})

	t.Run("NilInstance", func(t *testing.T) {
		var inst *Instance
		active := inst.Start()
		assert.NotPanics(t, func() {
			active.Run(16)
			assert.Nil(t, active.Deactivate())
		})
	})

	t.Run("NilToken", func(t *testing.T) {
		var active *Active
		assert.NotPanics(t, func() {
			active.Run(16)
			active.ConnectPort(0, nil)
			assert.Nil(t, active.ExtensionData(testURI))
			assert.Nil(t, active.Deactivate())
		})
	})
}
