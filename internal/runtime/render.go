package runtime

import (
	"fmt"
	"strings"

	"github.com/bobcode/ussd/pkg/domain"
	"github.com/bobcode/ussd/pkg/pagination"
)

// render builds the reply frame for the session's current page:
// optional prefix, title, then the option listing (paginated when the
// global threshold is exceeded). Each render increments Level, which is
// the sole driver of the back-navigation heuristic.
func (e *Engine) render(session *domain.Session, prefix string) (domain.StepResult, error) {
	page, err := e.menu.Page(session.CurrentPage)
	if err != nil {
		return domain.StepResult{}, err
	}

	var b strings.Builder
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteString("\n")
	}
	b.WriteString(page.Title)

	options := page.Options
	if e.paginationActive(page) {
		options = pagination.WithControls(options, session.Part, e.cfg.ItemsPerPage,
			e.cfg.NextPageCommand, e.cfg.PreviousPageCommand)
	}
	for _, opt := range options {
		// Wildcards and other label-less options prompt through the title.
		if opt.Label == "" {
			continue
		}
		fmt.Fprintf(&b, "\n%s. %s", opt.Input, opt.Label)
	}

	session.Level++
	return domain.StepResult{
		Message:         b.String(),
		ContinueSession: !page.Terminal,
	}, nil
}

// paginationActive applies the engine's global threshold. The page's
// own ItemsPerPage hint is advisory for authoring tools and is not
// consulted here.
func (e *Engine) paginationActive(page *domain.Page) bool {
	return e.cfg.EnablePagination && e.cfg.ItemsPerPage > 0 && len(page.Options) > e.cfg.ItemsPerPage
}
