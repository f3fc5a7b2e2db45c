package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/index"
)

func TestIsRetryable(t *testing.T) {
	retryable := &index.RetryableError{StatusCode: 503, Message: "overloaded"}
	if !IsRetryable(retryable) {
		t.Error("RetryableError must be retryable")
	}
	if !IsRetryable(fmt.Errorf("upsert: %w", retryable)) {
		t.Error("wrapped RetryableError must be retryable")
	}
	if IsRetryable(errors.New("bad request")) {
		t.Error("plain error must not be retryable")
	}
	if IsRetryable(nil) {
		t.Error("nil must not be retryable")
	}
}

func TestBackoff_GrowsAndCaps(t *testing.T) {
	for attempt := 0; attempt < 8; attempt++ {
		d := Backoff(attempt)
		base := time.Duration(1<<uint(attempt)) * time.Second
		if base > 30*time.Second {
			base = 30 * time.Second
		}
		if d < base || d > base+base/2 {
			t.Errorf("attempt %d: backoff %v outside [%v, %v]", attempt, d, base, base+base/2)
		}
	}
}
