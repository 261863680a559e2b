package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_RegistrationOrder(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe("basket:changed", func(any) { got = append(got, "first") })
	bus.Subscribe("basket:changed", func(any) { got = append(got, "second") })
	bus.Subscribe("basket:changed", func(any) { got = append(got, "third") })

	bus.Publish("basket:changed", nil)

	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestPublish_PayloadDelivered(t *testing.T) {
	bus := NewBus()

	var got any
	bus.Subscribe("preview:changed", func(payload any) { got = payload })

	bus.Publish("preview:changed", 42)
	assert.Equal(t, 42, got)
}

func TestPublish_ExactNameOnly(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe("basket:changed", func(any) { called = true })

	bus.Publish("basket:opened", nil)
	assert.False(t, called)
}

func TestPublish_NoSubscribers(t *testing.T) {
	bus := NewBus()
	require.NotPanics(t, func() {
		bus.Publish("orderForm:reset", struct{}{})
	})
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()

	var first, second int
	sub := bus.Subscribe("items:changed", func(any) { first++ })
	bus.Subscribe("items:changed", func(any) { second++ })

	bus.Publish("items:changed", nil)
	bus.Unsubscribe(sub)
	bus.Publish("items:changed", nil)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestUnsubscribe_UnknownIsNoop(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("items:changed", func(any) {})

	bus.Unsubscribe(sub)
	require.NotPanics(t, func() {
		bus.Unsubscribe(sub)
		bus.Unsubscribe(nil)
	})
}

func TestSubscribe_DuringDispatchDoesNotFire(t *testing.T) {
	bus := NewBus()

	late := false
	bus.Subscribe("items:changed", func(any) {
		bus.Subscribe("items:changed", func(any) { late = true })
	})

	bus.Publish("items:changed", nil)
	assert.False(t, late, "handler registered mid-dispatch must only see later events")

	bus.Publish("items:changed", nil)
	assert.True(t, late)
}
