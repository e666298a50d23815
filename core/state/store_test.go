package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	N    int
	Note string
}

func TestStoreWithCreatesAndPersists(t *testing.T) {
	s := NewStore[counter]()

	_, ok := s.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.With(1, func(c *counter) error {
		c.N++
		c.Note = "hi"
		return nil
	}))
	require.NoError(t, s.With(1, func(c *counter) error {
		c.N++
		return nil
	}))

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, counter{N: 2, Note: "hi"}, got)
	assert.Equal(t, 1, s.Len())
}

func TestStoreWithPropagatesError(t *testing.T) {
	s := NewStore[counter]()
	boom := errors.New("boom")
	err := s.With(5, func(c *counter) error {
		c.N = 9
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := s.Get(5)
	assert.Equal(t, 9, got.N, "mutations before the error are kept")
}

func TestStoreSerialisesSameKey(t *testing.T) {
	s := NewStore[counter]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With(7, func(c *counter) error {
				n := c.N
				time.Sleep(time.Microsecond)
				c.N = n + 1
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := s.Get(7)
	assert.Equal(t, 50, got.N)
}

func TestStoreDifferentKeysDoNotBlock(t *testing.T) {
	s := NewStore[counter]()
	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.With(1, func(c *counter) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	done := make(chan struct{})
	go func() {
		_ = s.With(2, func(c *counter) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("key 2 blocked behind key 1")
	}
	close(release)
}

func TestStoreRangeOrdered(t *testing.T) {
	s := NewStore[counter]()
	for _, k := range []int64{30, 10, 20} {
		k := k
		require.NoError(t, s.With(k, func(c *counter) error {
			c.N = int(k)
			return nil
		}))
	}

	var keys []int64
	s.Range(func(key int64, v counter) {
		keys = append(keys, key)
		assert.Equal(t, int(key), v.N)
	})
	assert.Equal(t, []int64{10, 20, 30}, keys)
}
