// Package builder constructs menu graphs and validates them before they
// reach the engine: the root must resolve, every option target must
// exist, and a page may carry at most one wildcard. A menu that builds
// is safe to navigate.
package builder

import (
	"fmt"
	"strings"

	"github.com/bobcode/ussd/pkg/domain"
)

// MenuBuilder assembles a domain.Menu.
type MenuBuilder struct {
	menu *domain.Menu
}

// New creates a builder for a menu with the given ID.
func New(menuID string) *MenuBuilder {
	return &MenuBuilder{
		menu: &domain.Menu{
			ID:    menuID,
			Pages: make(map[string]*domain.Page),
		},
	}
}

// Root sets the starting page ID.
func (b *MenuBuilder) Root(pageID string) *MenuBuilder {
	b.menu.RootID = pageID
	return b
}

// Page adds (or reopens) a page and returns its builder.
func (b *MenuBuilder) Page(id, title string) *PageBuilder {
	page, ok := b.menu.Pages[id]
	if !ok {
		page = &domain.Page{ID: id, Title: title}
		b.menu.Pages[id] = page
	} else if title != "" {
		page.Title = title
	}
	return &PageBuilder{menu: b, page: page, lines: []string{page.Title}}
}

// Build validates the graph and hands it over. The returned menu must be
// treated as read-only.
func (b *MenuBuilder) Build() (*domain.Menu, error) {
	if err := Validate(b.menu); err != nil {
		return nil, err
	}
	return b.menu, nil
}

// Validate checks a menu's structural invariants: the root resolves,
// every option target exists, and each page has at most one wildcard.
// Menus assembled outside the builder (e.g. from YAML) go through the
// same checks.
func Validate(menu *domain.Menu) error {
	if menu.RootID == "" {
		return fmt.Errorf("%w: menu %q has no root page", domain.ErrInvalidMenu, menu.ID)
	}
	if !menu.HasPage(menu.RootID) {
		return fmt.Errorf("%w: root page %q is not defined in menu %q",
			domain.ErrInvalidMenu, menu.RootID, menu.ID)
	}

	for id, page := range menu.Pages {
		wildcards := 0
		for _, opt := range page.Options {
			if opt.Wildcard {
				wildcards++
			}
			if opt.Target != "" && !menu.HasPage(opt.Target) {
				return fmt.Errorf("%w: page %q option %q targets undefined page %q",
					domain.ErrInvalidMenu, id, opt.Input, opt.Target)
			}
		}
		if wildcards > 1 {
			return fmt.Errorf("%w: page %q has %d wildcard options, at most one is allowed",
				domain.ErrInvalidMenu, id, wildcards)
		}
	}
	return nil
}

// PageBuilder configures a single page.
type PageBuilder struct {
	menu  *MenuBuilder
	page  *domain.Page
	lines []string
}

// Line appends a line to the page title.
func (p *PageBuilder) Line(line string) *PageBuilder {
	p.lines = append(p.lines, line)
	p.page.Title = strings.Join(p.lines, "\n")
	return p
}

// Terminal marks the page as session-ending.
func (p *PageBuilder) Terminal() *PageBuilder {
	p.page.Terminal = true
	return p
}

// PaginationHint records the advisory per-page pagination hint for
// authoring tools. The engine's own pagination is configured globally.
func (p *PageBuilder) PaginationHint(itemsPerPage int) *PageBuilder {
	p.page.Paginated = true
	p.page.ItemsPerPage = itemsPerPage
	return p
}

// Page closes the current page and opens the next one, so pages can be
// declared in a single chain.
func (p *PageBuilder) Page(id, title string) *PageBuilder {
	return p.menu.Page(id, title)
}

// Build closes the current page and builds the menu.
func (p *PageBuilder) Build() (*domain.Menu, error) {
	return p.menu.Build()
}

// Option starts an option with the given input token and label.
func (p *PageBuilder) Option(input, label string) *OptionBuilder {
	return &OptionBuilder{page: p, opt: domain.Option{Input: input, Label: label}}
}

// Input starts a wildcard option that captures free-form entry
// (phone numbers, amounts, names). The raw input reaches the handler
// through the context.
func (p *PageBuilder) Input() *OptionBuilder {
	return &OptionBuilder{page: p, opt: domain.Option{Input: "*", Wildcard: true}}
}

// OptionBuilder finishes an option by binding its effect.
type OptionBuilder struct {
	page *PageBuilder
	opt  domain.Option
}

// GoTo binds the option to a target page.
func (o *OptionBuilder) GoTo(pageID string) *PageBuilder {
	o.opt.Target = pageID
	return o.commit()
}

// Action binds the option to an action handler key.
func (o *OptionBuilder) Action(key string) *PageBuilder {
	o.opt.ActionKey = key
	return o.commit()
}

// GoToAndAction binds both a target page and an action key.
func (o *OptionBuilder) GoToAndAction(pageID, key string) *PageBuilder {
	o.opt.Target = pageID
	o.opt.ActionKey = key
	return o.commit()
}

// End binds the option to implicit session termination: no target, no
// action, the engine replies with the configured end message.
func (o *OptionBuilder) End() *PageBuilder {
	return o.commit()
}

func (o *OptionBuilder) commit() *PageBuilder {
	o.page.page.Options = append(o.page.page.Options, o.opt)
	return o.page
}
