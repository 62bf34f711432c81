package reveal

// Disposer tears down one activation. Calling it more than once is a no-op.
type Disposer func()

// Coordinator binds target resolution, one Observer and one Driver to an
// activate/dispose lifecycle. A Coordinator owns at most one activation at a
// time; activating again disposes the previous one first.
type Coordinator struct {
	scene *Scene

	cfg      Config
	region   *Node
	driver   *Driver
	observer *Observer

	gen    uint64
	active bool
}

// NewCoordinator creates an idle coordinator bound to the scene.
func (s *Scene) NewCoordinator() *Coordinator {
	return &Coordinator{scene: s}
}

// Activate is a shorthand for NewCoordinator().Activate(cfg).
func (s *Scene) Activate(cfg Config) (Disposer, error) {
	return s.NewCoordinator().Activate(cfg)
}

// Activate validates cfg, resolves targets, hides them and starts watching
// the trigger region. Configuration errors are returned before any existing
// activation is touched. Zero resolved targets is not an error: nothing is
// watched and the returned Disposer does nothing.
func (c *Coordinator) Activate(cfg Config) (Disposer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	nodes, err := Resolve(cfg.Targets, cfg.Root, cfg.Selector)
	if err != nil {
		return nil, err
	}

	c.Dispose()
	c.gen++
	gen := c.gen
	disposer := Disposer(func() { c.disposeGen(gen) })

	s := c.scene
	if len(nodes) == 0 {
		s.log.Debug("no targets resolved", "section", cfg.Section, "selector", cfg.Selector)
		return disposer, nil
	}
	if !cfg.Region.AttachedTo(s.root) {
		s.log.Debug("trigger region detached at activation", "section", cfg.Section, "region", cfg.Region.Name)
		return disposer, nil
	}
	if prev := s.registry.Owner(cfg.Region); prev != nil {
		s.log.Debug("region already watched, disposing previous owner", "region", cfg.Region.Name)
		prev.Dispose()
	}

	c.cfg = cfg
	c.region = cfg.Region
	c.driver = NewDriver(s.root, nodes, cfg)
	c.driver.SetLogger(s.log)
	c.driver.Hide()
	c.observer = Observe(Trigger{
		Region:      cfg.Region,
		StartOffset: cfg.StartOffset,
		EndOffset:   cfg.EndOffset,
		Mode:        cfg.Mode,
	}, c.dispatch)
	c.active = true
	s.registry.add(c)
	s.log.Debug("activated", "section", cfg.Section, "region", cfg.Region.Name, "targets", len(nodes), "mode", cfg.Mode)
	return disposer, nil
}

// Active reports whether the coordinator currently watches a region.
func (c *Coordinator) Active() bool { return c.active }

// Section returns the section key of the current activation.
func (c *Coordinator) Section() string { return c.cfg.Section }

// Region returns the watched region, or nil when idle.
func (c *Coordinator) Region() *Node { return c.region }

// Driver returns the current activation's driver, or nil when idle.
func (c *Coordinator) Driver() *Driver { return c.driver }

// Observer returns the current activation's observer, or nil when idle.
func (c *Coordinator) Observer() *Observer { return c.observer }

// Dispose tears down the current activation, if any: the observer stops
// first so no event can arrive mid-teardown, then every handle is cancelled,
// then all references are released. Idempotent.
func (c *Coordinator) Dispose() {
	if !c.active {
		return
	}
	c.active = false
	c.observer.Dispose()
	c.driver.CancelAll()
	c.scene.registry.remove(c)
	c.driver.release()
	c.scene.log.Debug("disposed", "section", c.cfg.Section)
	c.observer = nil
	c.driver = nil
	c.region = nil
	c.cfg = Config{}
}

// disposeGen disposes only if gen is still the current activation, so a
// stale Disposer never tears down a later activation.
func (c *Coordinator) disposeGen(gen uint64) {
	if gen == c.gen {
		c.Dispose()
	}
}

func (c *Coordinator) dispatch(ev TriggerEvent) {
	if !c.active {
		return
	}
	c.driver.Dispatch(ev, c.cfg.Actions)
	c.scene.emitReveal(RevealEvent{
		Section:  c.cfg.Section,
		Kind:     ev.Kind,
		Progress: ev.Progress,
		Scroll:   ev.Scroll,
	})
}

// advance steps the driver. Called from Scene.Step.
func (c *Coordinator) advance(dt float64) {
	if c.active {
		c.driver.Advance(dt)
	}
}

// sample runs the observer, auto-disposing when the region has detached.
func (c *Coordinator) sample(vp *Viewport) {
	if !c.active {
		return
	}
	if !c.region.AttachedTo(c.scene.root) {
		c.scene.log.Debug("trigger region detached, disposing", "section", c.cfg.Section)
		c.Dispose()
		return
	}
	c.observer.Sample(vp)
}

// forcePlay answers a replay signal.
func (c *Coordinator) forcePlay() {
	if !c.active {
		return
	}
	c.driver.ForcePlay()
	c.scene.emitReveal(RevealEvent{
		Section:  c.cfg.Section,
		Kind:     EventReplay,
		Progress: 1,
		Scroll:   c.scene.viewport.ScrollY,
	})
}
