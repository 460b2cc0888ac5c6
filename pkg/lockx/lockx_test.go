package lockx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	m := NewKeyedMutex()
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock("conv-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	m := NewKeyedMutex()

	unlock1 := m.Lock("a")
	defer unlock1()

	// 不同key互不阻塞
	done := make(chan struct{})
	go func() {
		unlock2 := m.Lock("b")
		unlock2()
		close(done)
	}()
	<-done
}
