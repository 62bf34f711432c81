package reveal

import "testing"

func TestParseFragment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#pricing", "pricing"},
		{"/docs#pricing", "pricing"},
		{"https://example.com/page?q=1#contact", "contact"},
		{"pricing", "pricing"},
		{"  #hero  ", "hero"},
		{"#a%20b", "a b"},
		{"#", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseFragment(tt.in); got != tt.want {
			t.Errorf("ParseFragment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFragmentSourceNotifiesEveryNavigate(t *testing.T) {
	src := NewFragmentSource()
	var got []string
	src.Subscribe(func(s string) { got = append(got, s) })

	src.Navigate("#pricing")
	src.Navigate("#pricing")
	src.Navigate("/#hero")

	if len(got) != 3 || got[0] != "pricing" || got[1] != "pricing" || got[2] != "hero" {
		t.Errorf("got %v", got)
	}
	if src.Fragment() != "hero" {
		t.Errorf("Fragment = %q, want hero", src.Fragment())
	}
}

func TestFragmentSourceCancel(t *testing.T) {
	src := NewFragmentSource()
	var a, b int
	cancelA := src.Subscribe(func(string) { a++ })
	src.Subscribe(func(string) { b++ })

	cancelA()
	cancelA() // second cancel is a no-op
	src.Navigate("#x")
	if a != 0 || b != 1 {
		t.Errorf("a = %d b = %d, want 0 and 1", a, b)
	}
}

func TestFragmentSourceUnsubscribeDuringNotify(t *testing.T) {
	src := NewFragmentSource()
	var cancel func()
	calls := 0
	cancel = src.Subscribe(func(string) {
		calls++
		cancel()
	})
	other := 0
	src.Subscribe(func(string) { other++ })

	src.Navigate("#a")
	src.Navigate("#b")
	if calls != 1 || other != 2 {
		t.Errorf("calls = %d other = %d, want 1 and 2", calls, other)
	}
}

func TestFragmentSourceCurrent(t *testing.T) {
	var src CurrentSource = NewFragmentSource()
	if src.Current() != "" {
		t.Errorf("Current = %q, want empty", src.Current())
	}
	src.(*FragmentSource).Navigate("/docs#pricing")
	if src.Current() != "pricing" {
		t.Errorf("Current = %q, want pricing", src.Current())
	}
}
