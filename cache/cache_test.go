package cache

import "testing"

func TestKeyIsUnambiguous(t *testing.T) {
	pairs := [][2][]string{
		{{"a.b"}, {"a", "b"}},
		{{"ab"}, {"a", "b"}},
		{{""}, {}},
		{{"", ""}, {""}},
		{{"1:a"}, {"a"}},
	}

	for _, p := range pairs {
		if Key(p[0]) == Key(p[1]) {
			t.Errorf("Key(%q) and Key(%q) collide: %q", p[0], p[1], Key(p[0]))
		}
	}

	if Key([]string{"a", "b"}) != Key([]string{"a", "b"}) {
		t.Error("Key is not deterministic")
	}
}
