package cache

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkerStartsZero(t *testing.T) {
	m := NewMarker()
	require.True(t, m.LastUpdate().IsZero())
}

func TestInvalidateAdvances(t *testing.T) {
	m := NewMarker()
	m.Invalidate()
	first := m.LastUpdate()
	require.False(t, first.IsZero())

	m.Invalidate()
	require.False(t, m.LastUpdate().Before(first))
}

func TestInvalidateConcurrent(t *testing.T) {
	m := NewMarker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Invalidate()
		}()
	}
	wg.Wait()
	require.False(t, m.LastUpdate().IsZero())
}

func TestMiddlewareOnlyMutatingMethods(t *testing.T) {
	m := NewMarker()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := m.Middleware(next)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/jobs", nil))
	require.True(t, m.LastUpdate().IsZero())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/jobs", nil))
	require.False(t, m.LastUpdate().IsZero())
}
