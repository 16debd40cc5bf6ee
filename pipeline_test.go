package cryptoengine

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestDigestBatchAsyncPreservesOrderAndMatchesSync(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	const n = 10
	items := make([]*DigestWorkItem, n)
	payloads := make([][]byte, n)
	for i := 0; i < n; i++ {
		payloads[i] = []byte(fmt.Sprintf("message-%d", i))
		items[i] = newDigestWorkItem(payloads[i], 0, len(payloads[i]), DigestSHA384)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batch := e.DigestBatchAsync(ctx, items)
	errs, err := batch.Wait(ctx)
	if err != nil {
		t.Fatalf("batch wait: %v", err)
	}
	for i, itemErr := range errs {
		if itemErr != nil {
			t.Fatalf("item %d failed: %v", i, itemErr)
		}
	}

	for i, item := range items {
		want, err := e.DigestSync(payloads[i], 0, len(payloads[i]), DigestSHA384)
		if err != nil {
			t.Fatalf("independent digest %d: %v", i, err)
		}
		if !item.Result.Equal(want) {
			t.Fatalf("item %d: batch result %s != independent digest %s", i, item.Result, want)
		}
	}
}

func TestDigestAsyncResolvesFuture(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	payload := []byte("abc")
	future := e.DigestAsync(payload, 0, len(payload), DigestSHA384)
	ctx := context.Background()
	h, err := future.Wait(ctx)
	if err != nil {
		t.Fatalf("future wait: %v", err)
	}
	want, err := e.DigestSync(payload, 0, len(payload), DigestSHA384)
	if err != nil {
		t.Fatal(err)
	}
	if !h.Equal(want) {
		t.Fatalf("async digest %s != sync digest %s", h, want)
	}
}
