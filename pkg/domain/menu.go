package domain

import "fmt"

// Option is a selectable choice on a page.
//
// An option may carry a target page, an action key, both, or neither.
// Neither means "end the session here". At most one option per page may
// be a wildcard; it matches any input no exact-match option claimed.
type Option struct {
	// Input is the token the subscriber must type to select this option.
	Input string `json:"input" yaml:"input"`

	// Label is the display text. Options with an empty label (typically
	// wildcards) are not listed when the page renders.
	Label string `json:"label" yaml:"label"`

	// Target is the page to navigate to when selected (optional).
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// ActionKey names the handler to invoke when selected (optional).
	ActionKey string `json:"action_key,omitempty" yaml:"action,omitempty"`

	// Wildcard marks this option as a catch-all for free-form input.
	Wildcard bool `json:"wildcard,omitempty" yaml:"wildcard,omitempty"`
}

// Page is one screen of the menu graph: a title plus selectable options.
type Page struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	Options []Option `json:"options" yaml:"options"`

	// Terminal ends the session when this page renders with no further
	// navigation.
	Terminal bool `json:"terminal,omitempty" yaml:"terminal,omitempty"`

	// Paginated and ItemsPerPage are authoring hints. The engine paginates
	// from its own global configuration; these are advisory for menu tools
	// and are not consumed by the render step.
	Paginated    bool `json:"paginated,omitempty" yaml:"paginated,omitempty"`
	ItemsPerPage int  `json:"items_per_page,omitempty" yaml:"items_per_page,omitempty"`
}

// Wildcard returns the page's wildcard option, if any.
func (p *Page) WildcardOption() *Option {
	for i := range p.Options {
		if p.Options[i].Wildcard {
			return &p.Options[i]
		}
	}
	return nil
}

// Match finds the option selected by input: exact matches among
// non-wildcard options first, then the wildcard fallback. Returns nil
// when nothing matches.
func (p *Page) Match(input string) *Option {
	for i := range p.Options {
		if !p.Options[i].Wildcard && p.Options[i].Input == input {
			return &p.Options[i]
		}
	}
	return p.WildcardOption()
}

// Menu is an immutable-after-build tree of pages. Lookup only; no
// runtime mutation once handed to the engine.
type Menu struct {
	ID     string           `json:"id" yaml:"id"`
	RootID string           `json:"root" yaml:"root"`
	Pages  map[string]*Page `json:"pages" yaml:"pages"`
}

// Page returns the page for id, or an error wrapping ErrPageNotFound.
func (m *Menu) Page(id string) (*Page, error) {
	page, ok := m.Pages[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q in menu %q", ErrPageNotFound, id, m.ID)
	}
	return page, nil
}

// HasPage reports whether id resolves to a page.
func (m *Menu) HasPage(id string) bool {
	_, ok := m.Pages[id]
	return ok
}
