package stepflow

import "testing"

func TestOutput(t *testing.T) {
	t.Run("SingleWrite", func(t *testing.T) {
		o := NewOutput[int]()
		if o.Filled() {
			t.Fatal("new output should be empty")
		}
		if _, ok := o.Get(); ok {
			t.Fatal("Get reported a value on an empty output")
		}
		o.Set(42)
		for range 3 {
			if v, ok := o.Get(); !ok || v != 42 {
				t.Fatalf("Get() = %v, %v; want 42, true", v, ok)
			}
		}
	})
	t.Run("SetTwice", func(t *testing.T) {
		o := NewOutput[string]()
		o.Set("first")
		defer func() {
			if recover() == nil {
				t.Fatal("second Set did not panic")
			}
			if v, _ := o.Get(); v != "first" {
				t.Fatalf("value changed to %q after a second Set", v)
			}
		}()
		o.Set("second")
	})
	t.Run("Take", func(t *testing.T) {
		o := NewOutput[[]int]()
		if _, ok := o.Take(); ok {
			t.Fatal("Take reported a value on an empty output")
		}
		o.Set([]int{1, 2})
		v, ok := o.Take()
		if !ok || len(v) != 2 {
			t.Fatalf("Take() = %v, %v", v, ok)
		}
		if !o.Filled() {
			t.Fatal("output should stay filled after Take")
		}
	})
}
