package reveal

import "testing"

func commandNodes(cmds []RenderCommand) []*Node {
	out := make([]*Node, len(cmds))
	for i, c := range cmds {
		out[i] = c.Node
	}
	return out
}

func TestCommandsFiltersNodes(t *testing.T) {
	s := NewScene(800, 600)
	shown := NewBox("shown", 50, 50, ColorWhite)
	shown.SetPosition(10, 20)
	below := NewBox("below", 50, 50, ColorWhite)
	below.SetPosition(0, 2000)
	invisible := NewBox("invisible", 50, 50, ColorWhite)
	invisible.Visible = false
	transparent := NewBox("transparent", 50, 50, ColorWhite)
	transparent.SetAlpha(0)
	group := NewContainer("group")
	group.SetSize(800, 600)
	for _, n := range []*Node{shown, below, invisible, transparent, group} {
		s.Root().AddChild(n)
	}

	cmds := s.Commands()
	if got := names(commandNodes(cmds)); len(got) != 1 || got[0] != "shown" {
		t.Fatalf("commands = %v, want [shown]", got)
	}
	assertMatrix(t, "shown", cmds[0].Transform, [6]float64{1, 0, 0, 1, 10, 20})
	if cmds[0].Width != 50 || cmds[0].Height != 50 {
		t.Errorf("size = %vx%v", cmds[0].Width, cmds[0].Height)
	}

	s.Viewport().SetScroll(0, 1950)
	cmds = s.Commands()
	if got := names(commandNodes(cmds)); len(got) != 1 || got[0] != "below" {
		t.Fatalf("commands after scroll = %v, want [below]", got)
	}
	assertMatrix(t, "below", cmds[0].Transform, [6]float64{1, 0, 0, 1, 0, 50})
}

func TestCommandsIncludeTranslateAndAlpha(t *testing.T) {
	s := NewScene(800, 600)
	parent := NewContainer("parent")
	parent.SetAlpha(0.5)
	box := NewBox("box", 20, 20, ColorWhite)
	box.SetPosition(100, 100)
	box.SetTranslate(5, -10)
	box.SetAlpha(0.5)
	parent.AddChild(box)
	s.Root().AddChild(parent)

	cmds := s.Commands()
	if len(cmds) != 1 {
		t.Fatalf("commands = %d, want 1", len(cmds))
	}
	assertMatrix(t, "box", cmds[0].Transform, [6]float64{1, 0, 0, 1, 105, 90})
	assertNear(t, "alpha", cmds[0].Color.A, 0.25)
	if cmds[0].Color.R != 1 {
		t.Errorf("R = %v, want 1", cmds[0].Color.R)
	}
}

func TestCommandsFollowReveal(t *testing.T) {
	s, section, cards := sectionScene(0)
	if _, err := s.Activate(Config{Region: section, Selector: ".card", Duration: 0.2}); err != nil {
		t.Fatal(err)
	}
	if got := s.Commands(); len(got) != 0 {
		t.Fatalf("hidden cards should not draw, got %d commands", len(got))
	}
	s.Step(0)
	s.Step(0.2)
	cmds := s.Commands()
	if len(cmds) != len(cards) {
		t.Fatalf("commands = %d, want %d", len(cmds), len(cards))
	}
	for i, c := range cmds {
		if c.Node != cards[i] || c.Color.A != 1 {
			t.Errorf("command %d: node %s alpha %v", i, c.Node.Name, c.Color.A)
		}
	}
}
