package observable_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/goliatone/go-paymentform/pkg/observable"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestValueSubscribeReplaysCurrentAndNotifies(t *testing.T) {
	v := observable.New(1)

	var seen []int
	cancel := v.Subscribe(func(n int) { seen = append(seen, n) })

	v.Set(2)
	v.Update(func(n int) int { return n * 10 })
	cancel()
	v.Set(99)
	cancel()

	if diff := cmp.Diff([]int{1, 2, 20}, seen); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
	if got := v.Get(); got != 99 {
		t.Fatalf("expected current value 99, got %d", got)
	}
}

func TestValueSubscribersMayReadDuringNotification(t *testing.T) {
	v := observable.New("a")
	var observed []string
	v.Subscribe(func(string) { observed = append(observed, v.Get()) })

	v.Set("b")

	if diff := cmp.Diff([]string{"a", "b"}, observed); diff != "" {
		t.Fatalf("observed mismatch (-want +got):\n%s", diff)
	}
}

func TestValueConcurrentSet(t *testing.T) {
	v := observable.New(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	if got := v.Get(); got != 50 {
		t.Fatalf("expected 50 after concurrent updates, got %d", got)
	}
}
