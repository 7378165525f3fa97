// Package menuyaml loads menu graphs from YAML documents. Parsed menus
// pass through the same builder validation as programmatic ones, so a
// menu that loads is a menu that navigates.
//
// Document shape:
//
//	id: bank
//	root: main
//	pages:
//	  - id: main
//	    title: |-
//	      Welcome to Demo Bank
//	    options:
//	      - input: "1"
//	        label: Check Balance
//	        action: balance
//	      - input: "2"
//	        label: Transfer Money
//	        target: transfer
//	  - id: transfer
//	    title: "Enter recipient phone number:"
//	    options:
//	      - wildcard: true
//	        action: transfer
package menuyaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bobcode/ussd/pkg/builder"
	"github.com/bobcode/ussd/pkg/domain"
)

type document struct {
	ID    string `yaml:"id"`
	Root  string `yaml:"root"`
	Pages []page `yaml:"pages"`
}

type page struct {
	ID           string          `yaml:"id"`
	Title        string          `yaml:"title"`
	Terminal     bool            `yaml:"terminal"`
	Paginated    bool            `yaml:"paginated"`
	ItemsPerPage int             `yaml:"items_per_page"`
	Options      []domain.Option `yaml:"options"`
}

// Parse decodes and validates a menu document.
func Parse(data []byte) (*domain.Menu, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMenu, err)
	}

	menu := &domain.Menu{
		ID:     doc.ID,
		RootID: doc.Root,
		Pages:  make(map[string]*domain.Page, len(doc.Pages)),
	}
	for _, p := range doc.Pages {
		if _, dup := menu.Pages[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate page id %q", domain.ErrInvalidMenu, p.ID)
		}
		opts := make([]domain.Option, len(p.Options))
		copy(opts, p.Options)
		for i := range opts {
			// Wildcards default to the conventional "*" token.
			if opts[i].Wildcard && opts[i].Input == "" {
				opts[i].Input = "*"
			}
		}
		menu.Pages[p.ID] = &domain.Page{
			ID:           p.ID,
			Title:        p.Title,
			Terminal:     p.Terminal,
			Paginated:    p.Paginated,
			ItemsPerPage: p.ItemsPerPage,
			Options:      opts,
		}
	}

	if err := builder.Validate(menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// LoadFile reads and parses a menu document from disk.
func LoadFile(path string) (*domain.Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	menu, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("menu file %s: %w", path, err)
	}
	return menu, nil
}
