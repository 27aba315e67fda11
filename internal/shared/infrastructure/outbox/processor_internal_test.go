package outbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProcessor_RetryBackoff(t *testing.T) {
	p := &Processor{config: ProcessorConfig{RetryBackoffBase: time.Second, RetryBackoffMax: 10 * time.Second}}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, time.Second},
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 10 * time.Second},
		{60, 10 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, p.retryBackoff(tt.attempt), "attempt %d", tt.attempt)
	}

	defaults := &Processor{}
	assert.Equal(t, time.Second, defaults.retryBackoff(1))
}
