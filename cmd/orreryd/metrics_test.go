package main

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func TestServeMetricsReportsBindFailure(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	m := NewMetricsCollector()
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.ServeMetrics("not-an-address")
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("a failed bind must return")
	}
	if !strings.Contains(buf.String(), "metrics server") {
		t.Fatalf("bind failure not logged: %q", buf.String())
	}
}
