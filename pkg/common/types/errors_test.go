package types

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiError(t *testing.T) {
	var m MultiError
	assert.True(t, m.IsEmpty())
	assert.NoError(t, m.ErrOrNil())

	sentinel := errors.New("batch 3 panicked")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Add(errors.New("boom"))
		}()
	}
	wg.Wait()
	m.Add(nil)
	m.Add(sentinel)

	assert.Equal(t, 11, m.Len())
	err := m.ErrOrNil()
	assert.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "boom; boom")
}
