package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRegistryReplacesExistingConnection(t *testing.T) {
	registry := NewRegistry(nil, nopLogger{})
	id := uuid.New()

	first := newFakeConn()
	registry.Register(id, first)

	second := newFakeConn()
	registry.Register(id, second)

	// The evicted socket gets a close frame from its writer.
	assert.Eventually(t, func() bool {
		return first.closeFrameSent()
	}, 2*time.Second, 10*time.Millisecond)

	registry.Deliver(id, Pong())
	assert.Eventually(t, func() bool {
		return len(second.textFrames()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, first.textFrames())
}

func TestRegistryUnregisterLeavesReplacementBound(t *testing.T) {
	registry := NewRegistry(nil, nopLogger{})
	id := uuid.New()

	first := newFakeConn()
	firstConn := registry.Register(id, first)

	second := newFakeConn()
	registry.Register(id, second)

	// The evicted loop unwinding must not tear down the new binding.
	registry.Unregister(firstConn)

	registry.Deliver(id, Pong())
	assert.Eventually(t, func() bool {
		return len(second.textFrames()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRegistryDeliverWithoutConnection(t *testing.T) {
	registry := NewRegistry(nil, nopLogger{})

	// No local connection and no Redis: the frame is dropped quietly.
	registry.Deliver(uuid.New(), Pong())
}

func TestRegistryDeliverRacingEviction(t *testing.T) {
	registry := NewRegistry(nil, nopLogger{})
	id := uuid.New()

	// Churn register/unregister while deliveries are in flight. A delivery
	// landing on a just-evicted connection must drop the frame, not panic
	// on the closed send channel.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			conn := registry.Register(id, newFakeConn())
			registry.Unregister(conn)
		}
	}()

	for i := 0; i < 2000; i++ {
		registry.Deliver(id, Pong())
	}
	<-done
}

func TestConnectionEnqueueAfterEvict(t *testing.T) {
	conn := &Connection{send: make(chan []byte, 1)}
	assert.True(t, conn.enqueue([]byte("a")))

	conn.evict()
	conn.evict() // second eviction is a no-op

	assert.False(t, conn.enqueue([]byte("b")))
}

func TestRegistryUnregisterRemovesBinding(t *testing.T) {
	registry := NewRegistry(nil, nopLogger{})
	id := uuid.New()

	conn := newFakeConn()
	registered := registry.Register(id, conn)
	registry.Unregister(registered)

	registry.Deliver(id, Pong())
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, conn.textFrames())
}
