package reveal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Page is a set of reveal sections loaded from YAML.
//
//	sections:
//	  - id: pricing
//	    region: "#pricing"
//	    targets: ".card"
//	    stagger: 0.1
//	    ease: outBack
//	    offset: {x: 0, y: 40}
//	  - id: hero
//	    region: "#hero"
//	    targets: "*"
//	    mode: scrubbed
//	    start: 0.1
//	    end: 0.2
type Page struct {
	Sections []SectionSpec `yaml:"sections"`
}

// SectionSpec is the YAML form of one Config. Region and Targets are
// selectors: Region is matched under the scene root, Targets under the
// matched region.
type SectionSpec struct {
	ID       string   `yaml:"id"`
	Region   string   `yaml:"region"`
	Targets  string   `yaml:"targets,omitempty"`
	Mode     string   `yaml:"mode,omitempty"`
	Start    float64  `yaml:"start,omitempty"`
	End      float64  `yaml:"end,omitempty"`
	Duration float32  `yaml:"duration,omitempty"`
	Stagger  float32  `yaml:"stagger,omitempty"`
	Replay   float32  `yaml:"replay,omitempty"`
	Ease     string   `yaml:"ease,omitempty"`
	Scrub    string   `yaml:"scrubEase,omitempty"`
	Offset   *Vec2    `yaml:"offset,omitempty"`
	Once     bool     `yaml:"once,omitempty"`
	Actions  []string `yaml:"actions,omitempty"`
}

// LoadPage parses and checks a YAML page definition. Node lookups happen
// later, in ActivatePage.
func LoadPage(data []byte) (*Page, error) {
	var p Page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: parse page: %w", ErrInvalidConfig, err)
	}
	for i := range p.Sections {
		if _, err := p.Sections[i].config(nil); err != nil {
			return nil, fmt.Errorf("section %d (%s): %w", i, p.Sections[i].ID, err)
		}
	}
	return &p, nil
}

// ReadPage reads a page definition from a YAML file.
func ReadPage(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadPage(data)
}

// WritePage writes a page definition to a YAML file.
func WritePage(p *Page, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// config converts the section to a Config with Region set to region. A nil
// region only checks the fields.
func (sp *SectionSpec) config(region *Node) (Config, error) {
	cfg := Config{
		Section:        sp.ID,
		Region:         region,
		Selector:       sp.Targets,
		StartOffset:    sp.Start,
		EndOffset:      sp.End,
		Duration:       sp.Duration,
		Stagger:        sp.Stagger,
		ReplayDuration: sp.Replay,
		Offset:         sp.Offset,
		Once:           sp.Once,
	}
	if sp.Region == "" {
		return cfg, fmt.Errorf("%w: missing region selector", ErrInvalidConfig)
	}
	if _, err := ParseSelector(sp.Region); err != nil {
		return cfg, fmt.Errorf("%w: region: %w", ErrInvalidConfig, err)
	}
	var err error
	if cfg.Mode, err = ParseMode(sp.Mode); err != nil {
		return cfg, err
	}
	if cfg.Ease, err = EaseByName(sp.Ease); err != nil {
		return cfg, err
	}
	if cfg.ScrubEase, err = EaseByName(sp.Scrub); err != nil {
		return cfg, err
	}
	if len(sp.Actions) > 0 {
		if len(sp.Actions) != len(cfg.Actions) {
			return cfg, fmt.Errorf("%w: actions needs %d entries, got %d",
				ErrInvalidConfig, len(cfg.Actions), len(sp.Actions))
		}
		for i, name := range sp.Actions {
			if cfg.Actions[i], err = ParseAction(name); err != nil {
				return cfg, err
			}
		}
	}
	if region == nil {
		// Stand in for the node so Validate can check everything else.
		cfg.Region = NewContainer(sp.ID)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	cfg.Region = region
	return cfg, nil
}

// ActivatePage activates every section of p on its own coordinator and
// returns a Disposer that tears them all down. A section whose region
// selector matches nothing is skipped. On error, sections already
// activated are disposed before returning.
func (s *Scene) ActivatePage(p *Page) (Disposer, error) {
	var disposers []Disposer
	disposeAll := func() {
		for i := len(disposers) - 1; i >= 0; i-- {
			disposers[i]()
		}
	}
	for i := range p.Sections {
		sp := &p.Sections[i]
		d, err := s.activateSection(sp)
		if err != nil {
			disposeAll()
			return nil, fmt.Errorf("section %d (%s): %w", i, sp.ID, err)
		}
		if d != nil {
			disposers = append(disposers, d)
		}
	}
	return disposeAll, nil
}

func (s *Scene) activateSection(sp *SectionSpec) (Disposer, error) {
	sel, err := ParseSelector(sp.Region)
	if err != nil {
		return nil, fmt.Errorf("%w: region: %w", ErrInvalidConfig, err)
	}
	region := sel.First(s.root)
	if region == nil {
		s.log.Debug("section region not found", "section", sp.ID, "region", sp.Region)
		return nil, nil
	}
	cfg, err := sp.config(region)
	if err != nil {
		return nil, err
	}
	return s.Activate(cfg)
}
