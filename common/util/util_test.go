package util

import "testing"

func TestSet(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		var v int
		var i interface{} = 10
		Set(i, &v)
		if v != 10 {
			t.Errorf("want 10 got %d", v)
		}
	})
	t.Run("int pointer", func(t *testing.T) {
		var p *int
		v := 10
		var i interface{} = &v
		Set(i, &p)
		if p == nil {
			t.Errorf("t is nil")
		} else if *p != 10 {
			t.Errorf("want 10 got %d", *p)
		}
	})
	t.Run("string", func(t *testing.T) {
		var s string
		var i interface{} = "hello"
		Set(i, &s)
		if s != "hello" {
			t.Errorf("want hello got %s", s)
		}
	})
	t.Run("string to int", func(t *testing.T) {
		var v int
		var i interface{} = "hello"
		Set(i, &v)
		if v != 0 {
			t.Errorf("want 0 got %d", v)
		}
	})
}

func TestMaskEmail(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		want := "s*****e@example.org"
		ret := MaskEmail("someone@example.org")
		if ret != want {
			t.Errorf("want %s got %s", want, ret)
		}
	})
	t.Run("short local part", func(t *testing.T) {
		want := "**@example.org"
		ret := MaskEmail("ab@example.org")
		if ret != want {
			t.Errorf("want %s got %s", want, ret)
		}
	})
	t.Run("no at sign", func(t *testing.T) {
		want := "not-an-email"
		ret := MaskEmail("not-an-email")
		if ret != want {
			t.Errorf("want %s got %s", want, ret)
		}
	})
	t.Run("empty", func(t *testing.T) {
		ret := MaskEmail("")
		if ret != "" {
			t.Errorf("want empty got %s", ret)
		}
	})
}

func TestConvert(t *testing.T) {
	got := Convert([]int{1, 2, 3}, func(i int) int { return i * 2 })
	if len(got) != 3 {
		t.Fatalf("want 3 got %d", len(got))
	}
	for i, v := range []int{2, 4, 6} {
		if got[i] != v {
			t.Errorf("index %d: want %d got %d", i, v, got[i])
		}
	}
}

func TestCollectTint(t *testing.T) {
	c := MakeCollectTint()
	c.Add(1)
	c.Add(1)
	c.Add(2)
	if c.Size() != 2 {
		t.Errorf("want 2 got %d", c.Size())
	}
	if !c.Exist(1) {
		t.Errorf("want 1 to exist")
	}
	c.Delete(1)
	if c.Exist(1) {
		t.Errorf("want 1 to be deleted")
	}
	got := c.Export()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("want [2] got %v", got)
	}
}
