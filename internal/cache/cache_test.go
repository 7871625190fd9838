package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestGetOrCompute_MemoizesSuccess(t *testing.T) {
	c := New[string, int]()
	calls := 0

	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute("key", compute)
		if err != nil {
			t.Fatalf("GetOrCompute: %v", err)
		}
		if v != 42 {
			t.Errorf("value = %d, want 42", v)
		}
	}

	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestGetOrCompute_DistinctKeys(t *testing.T) {
	c := New[string, string]()

	a, _ := c.GetOrCompute("a", func() (string, error) { return "alpha", nil })
	b, _ := c.GetOrCompute("b", func() (string, error) { return "beta", nil })

	if a != "alpha" || b != "beta" {
		t.Errorf("values = %q, %q", a, b)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	c := New[string, int]()
	calls := 0

	_, err := c.GetOrCompute("key", func() (int, error) {
		calls++
		return 0, fmt.Errorf("transient")
	})
	if err == nil {
		t.Fatal("expected error")
	}

	v, err := c.GetOrCompute("key", func() (int, error) {
		calls++
		return 7, nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute after failure: %v", err)
	}
	if v != 7 {
		t.Errorf("value = %d, want 7", v)
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2 (failure is retried)", calls)
	}
}

func TestGetOrCompute_ConcurrentSingleComputation(t *testing.T) {
	c := New[string, int]()
	calls := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrCompute("key", func() (int, error) {
				calls++
				return 9, nil
			})
			if err != nil || v != 9 {
				t.Errorf("GetOrCompute = %d, %v", v, err)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("compute ran %d times under contention, want 1", calls)
	}
}
