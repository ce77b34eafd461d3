package main

import (
	"context"
	"testing"
	"time"
)

func TestPercentile(t *testing.T) {
	samples := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	if got := percentile(samples, 0); got != 1 {
		t.Fatalf("p0 = %v", got)
	}
	if got := percentile(samples, 50); got != 5 {
		t.Fatalf("p50 = %v", got)
	}
	if got := percentile(samples, 100); got != 10 {
		t.Fatalf("p100 = %v", got)
	}
	if got := percentile(nil, 50); got != 0 {
		t.Fatalf("empty = %v", got)
	}
}

func TestRunSmallAgainstMiniredis(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	if err := run(context.Background(), "", "t", 5, 2, 4, 50); err != nil {
		t.Fatalf("run: %v", err)
	}
}
