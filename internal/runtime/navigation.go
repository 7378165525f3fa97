package runtime

import (
	"context"
	"fmt"

	"github.com/bobcode/ussd/pkg/domain"
	"github.com/bobcode/ussd/pkg/pagination"
)

// process handles the continuing branch: resume choices, navigation
// commands, pagination movement, and option dispatch.
func (e *Engine) process(ctx context.Context, session *domain.Session, input string) (domain.StepResult, error) {
	if session.AwaitingResumeChoice {
		return e.processResumeChoice(session, input)
	}

	page, err := e.menu.Page(session.CurrentPage)
	if err != nil {
		return domain.StepResult{}, err
	}

	// Pagination movement: when the current page is paginated, the
	// next/prev tokens move Part instead of selecting an option.
	if e.paginationActive(page) {
		switch input {
		case e.cfg.NextPageCommand:
			if session.Part < e.totalParts(page) {
				session.Part++
			}
			return e.render(session, "")
		case e.cfg.PreviousPageCommand:
			if session.Part > 1 {
				session.Part--
			}
			return e.render(session, "")
		}
	}

	if e.cfg.EnableAutoBackNavigation && input == e.cfg.BackCommand && session.Level > 1 {
		return e.goBack(session)
	}

	if input == e.cfg.HomeCommand {
		return domain.Home(), nil
	}

	option := page.Match(input)
	if option == nil {
		return e.render(session, e.cfg.InvalidInputMessage)
	}

	if option.ActionKey != "" {
		if handler, ok := e.registry.Lookup(option.ActionKey); ok {
			e.metrics.HandlerCalls.WithLabelValues(option.ActionKey).Inc()

			uc := &domain.Context{
				Request: domain.Request{
					SessionID: session.ID,
					UserID:    session.UserID,
					Msisdn:    session.Msisdn,
					Network:   session.Network,
					Input:     input,
				},
				Session:   session,
				ActionKey: option.ActionKey,
			}
			result, err := handler.Handle(ctx, uc)
			if err != nil {
				return domain.StepResult{}, fmt.Errorf("action %q: %w", option.ActionKey, err)
			}
			return result, nil
		}

		// Integration gap: log and fall through to the option's own target.
		e.logger.Warn("no action handler registered", "action", option.ActionKey, "page", page.ID)
		e.metrics.MissingHandlers.Inc()
	}

	if option.Target != "" {
		e.setPage(session, option.Target)
		return e.render(session, "")
	}

	// Neither target nor action: implicit session termination.
	return domain.End(e.cfg.DefaultEndMessage), nil
}

// processResumeChoice drives the absorbing resume/fresh prompt state.
// "1" resumes at the stashed page, "2" wipes the session back to root,
// anything else re-shows the prompt.
func (e *Engine) processResumeChoice(session *domain.Session, input string) (domain.StepResult, error) {
	switch input {
	case "1":
		session.AwaitingResumeChoice = false
		if session.PreviousPage != "" {
			session.CurrentPage = session.PreviousPage
			session.PreviousPage = ""
		}
		e.metrics.SessionsResumed.Inc()
		return e.render(session, "Resuming your session...")
	case "2":
		session.AwaitingResumeChoice = false
		session.PreviousPage = ""
		e.setPage(session, e.menu.RootID)
		session.Level = 1
		session.ClearData()
		return e.render(session, "")
	default:
		return domain.Continue(e.cfg.InvalidInputMessage + "\n" + e.resumePrompt()), nil
	}
}

// goBack applies the single-hop back heuristic: below depth 2 the
// session collapses to the root. There is no history stack.
func (e *Engine) goBack(session *domain.Session) (domain.StepResult, error) {
	session.Level--
	if session.Level <= 1 {
		e.setPage(session, e.menu.RootID)
		session.Level = 1
	}
	return e.render(session, "Going back...")
}

func (e *Engine) totalParts(page *domain.Page) int {
	return pagination.Paginate(page.Options, 1, e.cfg.ItemsPerPage).TotalPages
}
