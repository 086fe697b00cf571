package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeEventInvokesOnce(t *testing.T) {
	count := 0
	impl := MakeEvent(func() { count++ })
	impl.Invoke()
	assert.Equal(t, 1, count)
}

func TestCancelSuppressesInvoke(t *testing.T) {
	count := 0
	impl := MakeEvent(func() { count++ })
	impl.Cancel()
	impl.Invoke()
	assert.Equal(t, 0, count)
	assert.True(t, impl.IsCancelled())
}

func TestMakeEvent1BindsArgument(t *testing.T) {
	var got int
	setter := func(v int) { got = v }
	impl := MakeEvent1(setter, 42)
	impl.Invoke()
	assert.Equal(t, 42, got)
}

func TestMakeEvent2And3(t *testing.T) {
	var a, b, c int
	impl2 := MakeEvent2(func(x, y int) { a, b = x, y }, 1, 2)
	impl2.Invoke()
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)

	impl3 := MakeEvent3(func(x, y, z int) { a, b, c = x, y, z }, 3, 4, 5)
	impl3.Invoke()
	assert.Equal(t, 3, a)
	assert.Equal(t, 4, b)
	assert.Equal(t, 5, c)
}

func TestRefCounting(t *testing.T) {
	impl := MakeEvent(func() {})
	assert.Equal(t, int32(1), impl.RefCount())
	impl.Ref()
	assert.Equal(t, int32(2), impl.RefCount())
	impl.Unref()
	assert.Equal(t, int32(1), impl.RefCount())
}

type fakeController struct {
	cancelled bool
	removed   bool
	expired   bool
}

func (f *fakeController) CancelID(Id)         { f.cancelled = true }
func (f *fakeController) RemoveID(Id)         { f.removed = true }
func (f *fakeController) IsExpiredID(Id) bool { return f.expired }

func TestIdDelegatesToController(t *testing.T) {
	fc := &fakeController{}
	impl := MakeEvent(func() {})
	id := NewID(impl, 10, 0, 3, fc)

	id.Cancel()
	assert.True(t, fc.cancelled)

	id.Remove()
	assert.True(t, fc.removed)

	fc.expired = true
	assert.True(t, id.IsExpired())
	assert.False(t, id.IsPending())
	assert.False(t, id.IsRunning())

	fc.expired = false
	assert.False(t, id.IsExpired())
	assert.True(t, id.IsPending())
}

func TestZeroIdIsExpired(t *testing.T) {
	var id Id
	assert.True(t, id.IsExpired())
}
