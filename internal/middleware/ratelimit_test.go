package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("user-1") {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
	}
	if rl.Allow("user-1") {
		t.Error("Expected 4th request to be rejected")
	}
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.Allow("user-1") {
		t.Fatal("Expected first user to be allowed")
	}
	if !rl.Allow("user-2") {
		t.Error("Expected second user to have an independent window")
	}
	if rl.Allow("user-1") {
		t.Error("Expected first user to be over the limit")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow("user-1") {
		t.Fatal("Expected first request to be allowed")
	}
	if rl.Allow("user-1") {
		t.Fatal("Expected second request inside the window to be rejected")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("user-1") {
		t.Error("Expected request after the window to be allowed again")
	}
}
