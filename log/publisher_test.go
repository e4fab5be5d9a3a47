package log_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/perfmark/log"
)

func TestPublisher_FanOut(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	a := pub.Subscribe()
	b := pub.Subscribe()

	n, err := pub.Write([]byte("entry"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.Equal(t, "entry", string(<-a.C()))
	assert.Equal(t, "entry", string(<-b.C()))
}

func TestPublisher_DropsOldestWhenFull(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher(log.WithBufferSize(2))
	sub := pub.Subscribe()

	for _, s := range []string{"one", "two", "three"} {
		_, err := pub.Write([]byte(s))
		require.NoError(t, err)
	}

	// "one" was dropped to make room.
	assert.Equal(t, "two", string(<-sub.C()))
	assert.Equal(t, "three", string(<-sub.C()))
}

func TestPublisher_Close(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	sub := pub.Subscribe()

	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close())

	_, open := <-sub.C()
	assert.False(t, open)

	// Writes after close are accepted and discarded.
	n, err := pub.Write([]byte("late"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// Subscribing after close yields a closed channel.
	late := pub.Subscribe()
	_, open = <-late.C()
	assert.False(t, open)
}

func TestSubscription_Close(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	sub := pub.Subscribe()

	sub.Close()

	// The publisher compacts the subscription on its next write and closes
	// the channel.
	_, err := pub.Write([]byte("x"))
	require.NoError(t, err)

	_, open := <-sub.C()
	assert.False(t, open)
}
