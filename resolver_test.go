package segment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// selectRecorder records every index the engine asks the host to select.
type selectRecorder struct {
	calls []int
	err   error
}

func (r *selectRecorder) onSelect(index int) error {
	r.calls = append(r.calls, index)
	return r.err
}

func TestResolver_Click(t *testing.T) {
	rec := &selectRecorder{}
	res := NewResolver(NewRegistry(threeOptions()), rec.onSelect, nil)

	tests := []struct {
		x    float32
		want int
	}{
		{10, 0},
		{55, 1},
		{300, 2},
	}
	for _, tt := range tests {
		res.Begin()
		got := res.ResolveClick(tt.x)
		assert.Equal(t, Resolution{Index: tt.want, Dispatched: true}, got, "click at %v", tt.x)
	}
	assert.Equal(t, []int{0, 1, 2}, rec.calls)
}

func TestResolver_DragFallbackChain(t *testing.T) {
	unmeasured := func() []Option { return make([]Option, 3) }

	tests := []struct {
		name       string
		measure    MeasureFunc
		dragTarget int
		releaseX   float32
		active     int
		want       int
	}{
		{"tracked target beats release point", threeOptions(), 1, 100, 0, 1},
		{"untracked falls back to hit-test", threeOptions(), -1, 100, 0, 2},
		{"untracked beyond row picks nearest", threeOptions(), -1, 500, 0, 2},
		{"stale tracked target is ignored", threeOptions(), 7, 10, 2, 0},
		{"nothing measured falls back to active", unmeasured, -1, 100, 1, 1},
		{"nothing measured and no active", unmeasured, -1, 100, -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &selectRecorder{}
			res := NewResolver(NewRegistry(tt.measure), rec.onSelect, nil)
			res.Begin()

			got := res.ResolveDrag(tt.dragTarget, tt.releaseX, tt.active)
			assert.Equal(t, tt.want, got.Index)
			if tt.want < 0 {
				assert.Empty(t, rec.calls)
				assert.False(t, got.Dispatched)
				return
			}
			assert.Equal(t, []int{tt.want}, rec.calls)
		})
	}
}

func TestResolver_DispatchesOncePerGesture(t *testing.T) {
	rec := &selectRecorder{}
	res := NewResolver(NewRegistry(threeOptions()), rec.onSelect, nil)

	res.Begin()
	res.ResolveDrag(2, 95, 0)
	assert.True(t, res.Resolved())

	again := res.ResolveClick(10)
	assert.Equal(t, -1, again.Index)
	again = res.ResolveDrag(1, 50, 0)
	assert.Equal(t, -1, again.Index)
	assert.Equal(t, []int{2}, rec.calls)

	res.Begin()
	assert.False(t, res.Resolved())
	res.ResolveClick(10)
	assert.Equal(t, []int{2, 0}, rec.calls)
}

func TestResolver_EmptyRow(t *testing.T) {
	rec := &selectRecorder{}
	res := NewResolver(NewRegistry(nil), rec.onSelect, nil)

	res.Begin()
	assert.Equal(t, -1, res.ResolveClick(10).Index)
	assert.Equal(t, -1, res.ResolveDrag(-1, 10, 0).Index)
	assert.Empty(t, rec.calls)
	assert.False(t, res.Resolved(), "an empty resolution does not use up the gesture")
}

func TestResolver_Rejection(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rejected := errors.New("route not allowed")
	rec := &selectRecorder{err: rejected}
	res := NewResolver(NewRegistry(threeOptions()), rec.onSelect, zap.New(core))

	res.Begin()
	got := res.ResolveClick(55)
	assert.Equal(t, 1, got.Index)
	assert.True(t, got.Dispatched)
	assert.ErrorIs(t, got.Err, rejected)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "host rejected selection", warns[0].Message)
	assert.Equal(t, int64(1), warns[0].ContextMap()["index"])
	assert.Equal(t, 1, logs.FilterMessage("select requested").Len())
}

func TestResolver_VisualOnly(t *testing.T) {
	res := NewResolver(NewRegistry(threeOptions()), nil, nil)

	res.Begin()
	got := res.ResolveClick(95)
	assert.Equal(t, Resolution{Index: 2}, got)
	assert.True(t, res.Resolved())
}
