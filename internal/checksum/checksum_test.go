package checksum

import "testing"

func TestSum_DeterministicAndDistinct(t *testing.T) {
	a := Sum([]byte("hello"))
	b := Sum([]byte("hello"))
	c := Sum([]byte("world"))
	if a != b {
		t.Errorf("same input produced different sums: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different inputs produced the same sum")
	}
	if len(a) != 64 {
		t.Errorf("len(sum) = %d, want 64", len(a))
	}
}

func TestShort(t *testing.T) {
	full := Sum([]byte("body"))
	short := Short([]byte("body"))
	if len(short) != 12 {
		t.Errorf("len(short) = %d, want 12", len(short))
	}
	if full[:12] != short {
		t.Errorf("short %s is not a prefix of %s", short, full)
	}
}
