package reveal

import (
	"testing"
)

// replayScene places the pricing section far below the fold so it never
// intersects the viewport at scroll 0.
func replayScene(t *testing.T) (*Scene, *ReplayHook, *Node, []*Node, *sinkRecorder) {
	t.Helper()
	s, section, cards := sectionScene(3000)
	rec := &sinkRecorder{}
	s.SetEventSink(rec)
	if _, err := s.Activate(Config{Section: "pricing", Region: section, Selector: ".card", Stagger: 0.1, ReplayDuration: 0.2}); err != nil {
		t.Fatal(err)
	}
	hook := s.EnableReplay(ReplayOptions{})
	s.Step(0)
	return s, hook, section, cards, rec
}

func TestReplayOverridesScrollState(t *testing.T) {
	s, hook, _, cards, _ := replayScene(t)

	hook.Signal("pricing")
	if hook.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", hook.Pending())
	}
	s.Step(0) // settle: force-play
	if hook.Replayed() != 1 {
		t.Fatalf("Replayed = %d, want 1", hook.Replayed())
	}
	for i, tg := range s.Registry().TargetsFor("pricing") {
		if h := tg.Handle(); h == nil || h.Kind != HandleForce || !h.Started() {
			t.Errorf("target %d: handle %v, want started force handle", i, h)
		}
	}

	s.Step(0.2)
	for i, n := range cards {
		if n.Alpha != 1 || n.TranslateY != 0 {
			t.Errorf("card %d: alpha %v ty %v, want fully visible", i, n.Alpha, n.TranslateY)
		}
	}
	// Still out of view: no directional event undoes the replay.
	s.Step(1)
	if cards[0].Alpha != 1 {
		t.Errorf("Alpha = %v after settling, want 1", cards[0].Alpha)
	}
}

func TestReplayDuplicateWithinWindowCollapsed(t *testing.T) {
	s, hook, _, _, rec := replayScene(t)

	hook.Signal("pricing")
	s.Step(0.04)
	hook.Signal("pricing") // 40ms later, same identifier
	s.Step(0.01)

	if hook.Replayed() != 1 {
		t.Errorf("Replayed = %d, want 1", hook.Replayed())
	}
	if hook.Collapsed() != 1 {
		t.Errorf("Collapsed = %d, want 1", hook.Collapsed())
	}
	if n := rec.count(EventReplay); n != 1 {
		t.Errorf("replay events = %d, want 1", n)
	}
}

func TestReplayDuplicateSameFrameCollapsed(t *testing.T) {
	s, hook, _, _, _ := replayScene(t)
	hook.Signal("pricing")
	hook.Signal("pricing")
	s.Step(1.0 / 60)
	if hook.Replayed() != 1 || hook.Collapsed() != 1 {
		t.Errorf("Replayed = %d Collapsed = %d, want 1 and 1", hook.Replayed(), hook.Collapsed())
	}
}

func TestReplayAfterWindowPlaysAgain(t *testing.T) {
	s, hook, _, _, _ := replayScene(t)
	hook.Signal("pricing")
	s.Step(0.5)
	hook.Signal("pricing")
	s.Step(0)
	if hook.Replayed() != 2 {
		t.Errorf("Replayed = %d, want 2", hook.Replayed())
	}
}

func TestReplayEmptySignalResetsDuplicate(t *testing.T) {
	s, hook, _, _, _ := replayScene(t)
	hook.Signal("pricing")
	s.Step(0.01)
	hook.Signal("")
	hook.Signal("pricing")
	s.Step(0.01)
	if hook.Replayed() != 2 || hook.Collapsed() != 0 {
		t.Errorf("Replayed = %d Collapsed = %d, want 2 and 0", hook.Replayed(), hook.Collapsed())
	}
}

func TestReplayNegativeWindowNeverCollapses(t *testing.T) {
	s, _, _, _, _ := replayScene(t)
	hook := s.EnableReplay(ReplayOptions{Window: -1})
	hook.Signal("pricing")
	hook.Signal("pricing")
	s.Step(0)
	if hook.Replayed() != 2 {
		t.Errorf("Replayed = %d, want 2", hook.Replayed())
	}
}

func TestReplayUnknownSectionIsNoop(t *testing.T) {
	s, hook, _, cards, _ := replayScene(t)
	hook.Signal("careers")
	s.Step(0.5)
	if hook.Replayed() != 0 {
		t.Errorf("Replayed = %d, want 0", hook.Replayed())
	}
	if cards[0].Alpha != 0 {
		t.Errorf("Alpha = %v, want 0", cards[0].Alpha)
	}
}

func TestReplayUnknownSectionDoesNotBlockDuplicate(t *testing.T) {
	s, hook, _, _, _ := replayScene(t)
	hook.Signal("careers")
	hook.Signal("pricing")
	s.Step(0)
	if hook.Replayed() != 1 || hook.Collapsed() != 0 {
		t.Errorf("Replayed = %d Collapsed = %d", hook.Replayed(), hook.Collapsed())
	}
}

func TestReplayScrubbedSection(t *testing.T) {
	s, section, cards := sectionScene(3000)
	if _, err := s.Activate(Config{Section: "hero", Region: section, Selector: ".card", Mode: ModeScrubbed, ReplayDuration: 0.1}); err != nil {
		t.Fatal(err)
	}
	hook := s.EnableReplay(ReplayOptions{})
	s.Step(0)
	hook.Signal("hero")
	s.Step(0)
	s.Step(0.1)
	for _, n := range cards {
		if n.Alpha != 1 {
			t.Errorf("Alpha = %v, want 1", n.Alpha)
		}
	}
}

func TestReplayScrollIntoView(t *testing.T) {
	s, section, _ := sectionScene(3000)
	if _, err := s.Activate(Config{Section: "pricing", Region: section, Selector: ".card"}); err != nil {
		t.Fatal(err)
	}
	hook := s.EnableReplay(ReplayOptions{ScrollIntoView: true, ScrollMargin: 40})
	hook.Signal("pricing")
	s.Step(0)
	if got := s.Viewport().ScrollY; got != 2960 {
		t.Errorf("ScrollY = %v, want 2960", got)
	}
	// The region is now in view, but the force-play handles stay in charge.
	for _, tg := range s.Registry().TargetsFor("pricing") {
		if h := tg.Handle(); h == nil || h.Kind != HandleForce {
			t.Errorf("handle = %v, want force", h)
		}
	}
}

func TestReplayAnimatedScrollIntoView(t *testing.T) {
	s, section, _ := sectionScene(3000)
	if _, err := s.Activate(Config{Section: "pricing", Region: section, Selector: ".card"}); err != nil {
		t.Fatal(err)
	}
	hook := s.EnableReplay(ReplayOptions{ScrollIntoView: true, ScrollDuration: 0.5})
	hook.Signal("pricing")
	s.Step(0)
	if !s.Viewport().Scrolling() {
		t.Fatal("viewport should be scrolling")
	}
	for range 40 {
		s.Step(1.0 / 60)
	}
	if !approxEqual(s.Viewport().ScrollY, 3000, 1e-2) {
		t.Errorf("ScrollY = %v, want 3000", s.Viewport().ScrollY)
	}
}

func TestReplayAttachFragmentSource(t *testing.T) {
	s, hook, _, _, _ := replayScene(t)
	nav := NewFragmentSource()
	cancel := hook.Attach(nav)

	nav.Navigate("/landing#pricing")
	if hook.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", hook.Pending())
	}
	s.Step(0)
	if hook.Replayed() != 1 {
		t.Errorf("Replayed = %d, want 1", hook.Replayed())
	}

	cancel()
	nav.Navigate("#pricing")
	if hook.Pending() != 0 {
		t.Errorf("Pending = %d after cancel, want 0", hook.Pending())
	}
}

func TestReplayCloseDetachesSources(t *testing.T) {
	_, hook, _, _, _ := replayScene(t)
	nav := NewFragmentSource()
	hook.Attach(nav)
	hook.Signal("pricing")
	hook.Close()
	nav.Navigate("#pricing")
	if hook.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", hook.Pending())
	}
}

func TestReplayAfterDisposeIsNoop(t *testing.T) {
	s, section, cards := sectionScene(3000)
	dispose, err := s.Activate(Config{Section: "pricing", Region: section, Selector: ".card"})
	if err != nil {
		t.Fatal(err)
	}
	hook := s.EnableReplay(ReplayOptions{})
	dispose()
	hook.Signal("pricing")
	s.Step(1)
	if hook.Replayed() != 0 || cards[0].Alpha != 0 {
		t.Errorf("Replayed = %d alpha %v", hook.Replayed(), cards[0].Alpha)
	}
}

func TestReplayHookWithoutScene(t *testing.T) {
	reg := NewRegistry()
	now := 0.0
	hook := NewReplayHook(reg, ReplayOptions{Clock: func() float64 { return now }})
	hook.Signal("x")
	hook.Settle(0)
	if hook.Replayed() != 0 || hook.Pending() != 0 {
		t.Errorf("Replayed = %d Pending = %d", hook.Replayed(), hook.Pending())
	}
}

func TestReplayAttachQueuesCurrentFragment(t *testing.T) {
	s, section, cards := sectionScene(3000)
	nav := NewFragmentSource()
	nav.Navigate("/#pricing")
	if _, err := s.Activate(Config{Section: "pricing", Region: section, Selector: ".card", ReplayDuration: 0.2}); err != nil {
		t.Fatal(err)
	}
	hook := s.EnableReplay(ReplayOptions{})
	defer hook.Attach(nav)()
	if hook.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", hook.Pending())
	}
	s.Step(0)
	s.Step(0.2)
	if hook.Replayed() != 1 {
		t.Errorf("Replayed = %d, want 1", hook.Replayed())
	}
	for i, n := range cards {
		if n.Alpha != 1 {
			t.Errorf("card %d: alpha %v, want 1", i, n.Alpha)
		}
	}
}

func TestReplayAttachEmptyFragment(t *testing.T) {
	_, hook, _, _, _ := replayScene(t)
	hook.Attach(NewFragmentSource())
	if hook.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", hook.Pending())
	}
}

func TestReplaySectionActivatedAfterSignal(t *testing.T) {
	s, section, cards := sectionScene(3000)
	hook := s.EnableReplay(ReplayOptions{})
	hook.Signal("pricing")
	s.Step(0)
	if hook.Replayed() != 0 || hook.Current() != "pricing" {
		t.Fatalf("Replayed = %d Current = %q", hook.Replayed(), hook.Current())
	}

	if _, err := s.Activate(Config{Section: "pricing", Region: section, Selector: ".card", ReplayDuration: 0.2}); err != nil {
		t.Fatal(err)
	}
	s.Step(0)
	s.Step(0.2)
	if hook.Replayed() != 1 {
		t.Errorf("Replayed = %d, want 1", hook.Replayed())
	}
	if cards[2].Alpha != 1 {
		t.Errorf("alpha = %v, want 1", cards[2].Alpha)
	}

	s.Step(1)
	if hook.Replayed() != 1 {
		t.Errorf("Replayed = %d after settling again, want 1", hook.Replayed())
	}
}

func TestReplayReactivationReplaysCurrent(t *testing.T) {
	s, hook, section, cards, _ := replayScene(t)
	hook.Signal("pricing")
	s.Step(0)
	s.Step(0.2)

	c := s.Registry().Section("pricing")[0]
	c.Dispose()
	if _, err := c.Activate(Config{Section: "pricing", Region: section, Selector: ".card", ReplayDuration: 0.2}); err != nil {
		t.Fatal(err)
	}
	if cards[0].Alpha != 0 {
		t.Fatalf("alpha = %v after reactivation, want 0", cards[0].Alpha)
	}
	s.Step(0)
	s.Step(0.2)
	if hook.Replayed() != 2 {
		t.Errorf("Replayed = %d, want 2", hook.Replayed())
	}
	if cards[0].Alpha != 1 {
		t.Errorf("alpha = %v, want 1", cards[0].Alpha)
	}
}

func TestReplayEmptySignalClearsCurrent(t *testing.T) {
	s, section, cards := sectionScene(3000)
	hook := s.EnableReplay(ReplayOptions{})
	hook.Signal("pricing")
	hook.Signal("")
	s.Step(0)
	if _, err := s.Activate(Config{Section: "pricing", Region: section, Selector: ".card"}); err != nil {
		t.Fatal(err)
	}
	s.Step(1)
	if hook.Replayed() != 0 || hook.Current() != "" || cards[0].Alpha != 0 {
		t.Errorf("Replayed = %d Current = %q alpha %v", hook.Replayed(), hook.Current(), cards[0].Alpha)
	}
}
