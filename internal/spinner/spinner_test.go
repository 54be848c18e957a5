package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner(t *testing.T) {
	var out syncBuffer
	s := Start(&out, "researching")

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "researching")
	}, time.Second, 10*time.Millisecond)

	s.Set("ranking")
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "ranking")
	}, time.Second, 10*time.Millisecond)

	s.Stop()
	s.Stop()
	assert.True(t, strings.HasSuffix(out.String(), "\r"))
}

func TestSpinner_StopBeforeFirstFrame(t *testing.T) {
	var out syncBuffer
	s := Start(&out, "researching")
	s.Stop()
	assert.NotContains(t, out.String(), "researching")
}
