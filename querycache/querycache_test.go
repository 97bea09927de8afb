package querycache

import "testing"

func TestKey_SameInputsProduceSameKey(t *testing.T) {
	k1 := Key([]int{1, 2, 3}, []byte("params-a"))
	k2 := Key([]int{1, 2, 3}, []byte("params-a"))
	if k1 != k2 {
		t.Fatalf("expected identical inputs to produce identical keys: %q vs %q", k1, k2)
	}
}

func TestKey_DifferentParamsProduceDifferentKeys(t *testing.T) {
	k1 := Key([]int{1, 2, 3}, []byte("params-a"))
	k2 := Key([]int{1, 2, 3}, []byte("params-b"))
	if k1 == k2 {
		t.Fatal("expected different relevant params to change the cache key")
	}
}

func TestCache_PutGetRoundTrip(t *testing.T) {
	c := New[string]()
	key := Key([]int{1, 2}, nil)

	if _, ok := c.Get(key); ok {
		t.Fatal("expected empty cache to miss")
	}

	c.Put(key, "result")
	v, ok := c.Get(key)
	if !ok || v != "result" {
		t.Fatalf("expected cache hit with %q, got %q ok=%v", "result", v, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
}
