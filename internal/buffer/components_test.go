package buffer

import (
	"reflect"
	"testing"
)

func TestComponents(t *testing.T) {
	cases := []struct {
		name string
		want []string
	}{
		{"", []string{"?"}},
		{"file.txt", []string{"file.txt"}},
		{"/home/me/src/main.go", []string{"main.go", "src", "me", "home"}},
		{"dir/file.txt", []string{"file.txt", "dir"}},
		{"/srv/app/", []string{"app", "srv"}},
		{"./a/b", []string{"b", "a"}},
		{"/", []string{"/"}},
	}
	for _, tc := range cases {
		got := Components(tc.name)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Components(%q): expected %#v, got %#v", tc.name, tc.want, got)
		}
	}
}

func TestComponentsNormalisesUnicode(t *testing.T) {
	decomposed := "/tmp/cafe\u0301"
	composed := "/tmp/caf\u00e9"
	if got, want := Components(decomposed)[0], Components(composed)[0]; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestIndexOf(t *testing.T) {
	items := []Item{{ID: "a"}, {ID: "b"}}
	if idx := IndexOf(items, "b"); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx := IndexOf(items, ""); idx != -1 {
		t.Fatalf("expected -1 for empty id, got %d", idx)
	}
	if idx := IndexOf(items, "z"); idx != -1 {
		t.Fatalf("expected -1 for missing id, got %d", idx)
	}
}
