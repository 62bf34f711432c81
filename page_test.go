package reveal

import (
	"errors"
	"path/filepath"
	"testing"
)

const testPage = `
sections:
  - id: pricing
    region: "#pricing"
    targets: ".card"
    duration: 0.5
    stagger: 0.1
    ease: outBack
    offset: {x: 0, y: 40}
  - id: hero
    region: "#hero"
    targets: ".card"
    mode: scrubbed
    start: 0.1
    end: 0.2
`

func pageScene() (*Scene, []*Node, []*Node) {
	s, _, cards := sectionScene(1000)
	hero := NewContainer("hero", "section")
	hero.SetSize(800, 600)
	heroCards := boxes(hero, 2)
	s.Root().AddChildAt(hero, 0)
	return s, cards, heroCards
}

func TestLoadPage(t *testing.T) {
	p, err := LoadPage([]byte(testPage))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(p.Sections))
	}
	sp := p.Sections[0]
	if sp.ID != "pricing" || sp.Region != "#pricing" || sp.Targets != ".card" {
		t.Errorf("section 0 = %+v", sp)
	}
	if sp.Stagger != 0.1 || sp.Offset == nil || sp.Offset.Y != 40 {
		t.Errorf("stagger %v offset %v", sp.Stagger, sp.Offset)
	}
	if p.Sections[1].Mode != "scrubbed" || p.Sections[1].End != 0.2 {
		t.Errorf("section 1 = %+v", p.Sections[1])
	}
}

func TestLoadPageErrors(t *testing.T) {
	tests := []struct {
		name, yaml string
	}{
		{"bad yaml", "sections: [\n"},
		{"missing region", "sections:\n  - id: a\n"},
		{"bad mode", "sections:\n  - id: a\n    region: \"#a\"\n    mode: sideways\n"},
		{"bad ease", "sections:\n  - id: a\n    region: \"#a\"\n    ease: wobbly\n"},
		{"short actions", "sections:\n  - id: a\n    region: \"#a\"\n    actions: [play, reverse]\n"},
		{"bad action", "sections:\n  - id: a\n    region: \"#a\"\n    actions: [play, none, none, explode]\n"},
		{"crossed offsets", "sections:\n  - id: a\n    region: \"#a\"\n    start: 0.6\n    end: 0.5\n"},
		{"negative duration", "sections:\n  - id: a\n    region: \"#a\"\n    duration: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPage([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadPageActions(t *testing.T) {
	p, err := LoadPage([]byte("sections:\n  - id: a\n    region: \"#a\"\n    actions: [play, none, complete, reset]\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := p.Sections[0].config(NewContainer("a"))
	if err != nil {
		t.Fatal(err)
	}
	want := Actions{ActionPlay, ActionNone, ActionComplete, ActionReset}
	if cfg.Actions != want {
		t.Errorf("Actions = %v, want %v", cfg.Actions, want)
	}
}

func TestActivatePage(t *testing.T) {
	s, cards, heroCards := pageScene()
	p, err := LoadPage([]byte(testPage))
	if err != nil {
		t.Fatal(err)
	}
	dispose, err := s.ActivatePage(p)
	if err != nil {
		t.Fatal(err)
	}
	if s.Registry().Len() != 2 {
		t.Fatalf("registry len = %d, want 2", s.Registry().Len())
	}
	for _, n := range cards {
		if n.Alpha != 0 || n.TranslateY != 40 {
			t.Errorf("pricing card alpha %v ty %v", n.Alpha, n.TranslateY)
		}
	}
	c := s.Registry().Section("hero")
	if len(c) != 1 || c[0].Driver().Mode() != ModeScrubbed || c[0].Driver().Len() != len(heroCards) {
		t.Errorf("hero coordinators = %v", c)
	}

	dispose()
	if s.Registry().Len() != 0 {
		t.Errorf("registry len after dispose = %d", s.Registry().Len())
	}
	dispose()
}

func TestActivatePageSkipsMissingRegion(t *testing.T) {
	s, _, _ := sectionScene(1000)
	p, err := LoadPage([]byte(testPage))
	if err != nil {
		t.Fatal(err)
	}
	dispose, err := s.ActivatePage(p)
	if err != nil {
		t.Fatal(err)
	}
	defer dispose()
	if got := s.Registry().Sections(); len(got) != 1 || got[0] != "pricing" {
		t.Errorf("Sections = %v, want [pricing]", got)
	}
}

func TestWriteReadPage(t *testing.T) {
	p, err := LoadPage([]byte(testPage))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "page.yaml")
	if err := WritePage(p, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadPage(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Sections) != 2 || got.Sections[0].Ease != "outBack" || got.Sections[1].Start != 0.1 {
		t.Errorf("round trip = %+v", got.Sections)
	}
}

func TestReadPageMissingFile(t *testing.T) {
	if _, err := ReadPage(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
