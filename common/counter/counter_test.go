package counter

import "testing"

func TestPopMax(t *testing.T) {
	c := Counter[string]{}
	c.Inc("parking", 3)
	c.Inc("trees", 7)
	c.Inc("noise", 1)

	key, n := c.PopMax()
	if key != "trees" || n != 7 {
		t.Errorf("want trees 7 got %s %d", key, n)
	}
	key, n = c.PopMax()
	if key != "parking" || n != 3 {
		t.Errorf("want parking 3 got %s %d", key, n)
	}
	if len(c) != 1 {
		t.Errorf("want 1 remaining got %d", len(c))
	}
}
