package auth

import (
	"testing"
	"time"
)

func TestLoginRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	limiter := NewLoginRateLimiter(3, time.Minute)
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.allow("1.2.3.4", now)
		if !allowed {
			t.Fatalf("hit %d should be allowed", i+1)
		}
	}

	allowed, retryAfter := limiter.allow("1.2.3.4", now)
	if allowed {
		t.Fatalf("fourth hit should be rejected")
	}
	if retryAfter < time.Second {
		t.Fatalf("retryAfter too small: %v", retryAfter)
	}

	// Other IPs are unaffected.
	if ok, _ := limiter.allow("5.6.7.8", now); !ok {
		t.Fatalf("unrelated ip rejected")
	}
}

func TestLoginRateLimiter_WindowSlides(t *testing.T) {
	t.Parallel()

	limiter := NewLoginRateLimiter(2, time.Minute)
	start := time.Now().UTC()

	limiter.allow("1.2.3.4", start)
	limiter.allow("1.2.3.4", start)

	if ok, _ := limiter.allow("1.2.3.4", start.Add(time.Second)); ok {
		t.Fatalf("expected rejection inside window")
	}

	if ok, _ := limiter.allow("1.2.3.4", start.Add(2*time.Minute)); !ok {
		t.Fatalf("expected hit after window to be allowed")
	}
}
