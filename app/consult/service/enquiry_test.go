package service

import "testing"

func TestPlusAddressSlug(t *testing.T) {
	cases := []struct {
		addr string
		want string
	}{
		{"team+riverside@example.org", "riverside"},
		{"team+river+side@example.org", "river+side"},
		{"team@example.org", ""},
		{"team+@example.org", ""},
		{"team+riverside", ""},
		{"", ""},
	}
	for _, c := range cases {
		got := plusAddressSlug(c.addr)
		if got != c.want {
			t.Errorf("plusAddressSlug(%q): want %q got %q", c.addr, c.want, got)
		}
	}
}
