package pointer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinwheel/internal/geometry"
)

func TestOfferWhileInactiveIsDropped(t *testing.T) {
	s := NewSampler()
	assert.False(t, s.Offer(geometry.Point{X: 1, Y: 2}))
	_, ok := s.Take()
	assert.False(t, ok)
}

func TestLatestSampleWins(t *testing.T) {
	s := NewSampler()
	s.SetActive(true)

	require.True(t, s.Offer(geometry.Point{X: 1, Y: 1}))
	require.True(t, s.Offer(geometry.Point{X: 2, Y: 2}))
	require.True(t, s.Offer(geometry.Point{X: 3, Y: 3}))

	p, ok := s.Take()
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 3, Y: 3}, p)

	// Consumed; nothing remains until the next Offer.
	_, ok = s.Take()
	assert.False(t, ok)
}

func TestDeactivateDropsPending(t *testing.T) {
	s := NewSampler()
	s.SetActive(true)
	s.Offer(geometry.Point{X: 9, Y: 9})

	s.SetActive(false)
	_, ok := s.Take()
	assert.False(t, ok)
	assert.False(t, s.Active())
}

func TestConcurrentOfferTake(t *testing.T) {
	s := NewSampler()
	s.SetActive(true)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Offer(geometry.Point{X: float64(i), Y: float64(i)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Take()
		}
	}()
	wg.Wait()

	s.Offer(geometry.Point{X: -1, Y: -1})
	p, ok := s.Take()
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: -1, Y: -1}, p)
}
