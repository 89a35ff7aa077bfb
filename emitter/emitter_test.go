package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitDispatchesInRegistrationOrder(t *testing.T) {
	e := New(nil)
	var order []int
	e.On("range:change", func(interface{}) { order = append(order, 1) })
	e.On("range:change", func(interface{}) { order = append(order, 2) })
	e.Emit("range:change", nil)
	assert.Equal(t, []int{1, 2}, order)
}

func TestEmitPassesPayload(t *testing.T) {
	e := New(nil)
	var got interface{}
	e.On("scroll", func(p interface{}) { got = p })
	e.Emit("scroll", map[string]int{"scrollPosition": 42})
	assert.Equal(t, map[string]int{"scrollPosition": 42}, got)
}

func TestPanickingListenerDoesNotStopOthers(t *testing.T) {
	errs := 0
	e := New(loggerFunc(func(string, ...interface{}) { errs++ }))
	second := false
	e.On("scroll", func(interface{}) { panic("boom") })
	e.On("scroll", func(interface{}) { second = true })
	e.Emit("scroll", nil)
	assert.True(t, second, "a panicking listener must not prevent later listeners from running")
	assert.Equal(t, 1, errs)
}

func TestOnIndexedOffIndexedRemovesOnlyThatListener(t *testing.T) {
	e := New(nil)
	calls := map[string]int{}
	h1 := e.OnIndexed("load:start", func(interface{}) { calls["a"]++ })
	e.OnIndexed("load:start", func(interface{}) { calls["b"]++ })
	e.OffIndexed(h1)
	e.Emit("load:start", nil)
	assert.Equal(t, 0, calls["a"])
	assert.Equal(t, 1, calls["b"])
}

func TestClearRemovesAllListeners(t *testing.T) {
	e := New(nil)
	called := false
	e.On("resize", func(interface{}) { called = true })
	e.Clear()
	e.Emit("resize", nil)
	assert.False(t, called)
}

type loggerFunc func(string, ...interface{})

func (f loggerFunc) Errorf(format string, args ...interface{}) { f(format, args...) }
