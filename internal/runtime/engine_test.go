package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobcode/ussd/internal/runtime"
	"github.com/bobcode/ussd/pkg/adapters/memory"
	"github.com/bobcode/ussd/pkg/builder"
	"github.com/bobcode/ussd/pkg/domain"
	"github.com/bobcode/ussd/pkg/ports"
	"github.com/bobcode/ussd/pkg/registry"
)

var keyRecipient = domain.NewKey[string]("recipient")

func demoMenu(t testing.TB) *domain.Menu {
	t.Helper()

	menu, err := builder.New("demo_bank").
		Root("main").
		Page("main", "Welcome to Demo Bank").
		Option("1", "Check Balance").Action("balance").
		Option("2", "Transfer Money").GoTo("recipient").
		Option("3", "Goodbye").GoTo("goodbye").
		Option("4", "Exit").End().
		Option("5", "Offers").GoToAndAction("goodbye", "offers").
		Page("recipient", "Enter recipient phone number:").
		Input().Action("transfer").
		Page("confirm", "Transfer sent.").Terminal().
		Page("goodbye", "Goodbye!").Terminal().
		Build()
	require.NoError(t, err)
	return menu
}

func demoHandlers(t testing.TB) *registry.Registry {
	t.Helper()

	reg := registry.New()
	reg.MustRegister(ports.HandlerFunc{
		ActionKey: "balance",
		Fn: func(ctx context.Context, uc *domain.Context) (domain.StepResult, error) {
			return domain.End("Your balance is GHS 120.00."), nil
		},
	})
	reg.MustRegister(ports.HandlerFunc{
		ActionKey: "transfer",
		Fn: func(ctx context.Context, uc *domain.Context) (domain.StepResult, error) {
			domain.Set(uc.Session, keyRecipient, uc.Input())
			return domain.ContinueTo("handler text that navigation replaces", "confirm"), nil
		},
	})
	// "offers" is deliberately left unregistered.
	return reg
}

func newTestEngine(t testing.TB, cfg runtime.Config, opts ...runtime.Option) (*runtime.Engine, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	engine := runtime.NewEngine(demoMenu(t), store, demoHandlers(t), cfg, opts...)
	return engine, store
}

func newSessionRequest(sessionID string) domain.Request {
	return domain.Request{
		SessionID:  sessionID,
		Msisdn:     "233200000001",
		Network:    "MTN",
		NewSession: true,
	}
}

func inputRequest(sessionID, input string) domain.Request {
	return domain.Request{
		SessionID: sessionID,
		Msisdn:    "233200000001",
		Network:   "MTN",
		Input:     input,
	}
}

// start opens a session and navigates through the given inputs,
// requiring every intermediate reply to keep the session open.
func start(t testing.TB, engine *runtime.Engine, sessionID string, inputs ...string) domain.Response {
	t.Helper()

	resp, err := engine.HandleRequest(context.Background(), newSessionRequest(sessionID))
	require.NoError(t, err)
	for _, input := range inputs {
		require.True(t, resp.ContinueSession)
		resp, err = engine.HandleRequest(context.Background(), inputRequest(sessionID, input))
		require.NoError(t, err)
	}
	return resp
}

func storedSession(t testing.TB, store *memory.Store, sessionID string) *domain.Session {
	t.Helper()

	session, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	return session
}

func TestEngine_NewSessionRendersRoot(t *testing.T) {
	engine, store := newTestEngine(t, runtime.DefaultConfig())

	resp := start(t, engine, "sess-1")

	assert.Equal(t, "Welcome to Demo Bank\n1. Check Balance\n2. Transfer Money\n3. Goodbye\n4. Exit\n5. Offers", resp.Message)
	assert.True(t, resp.ContinueSession)
	assert.Equal(t, "sess-1", resp.SessionID)

	session := storedSession(t, store, "sess-1")
	assert.Equal(t, "main", session.CurrentPage)
	assert.Equal(t, 2, session.Level)
	assert.Equal(t, 1, session.Part)
}

func TestEngine_OptionNavigatesToTarget(t *testing.T) {
	engine, store := newTestEngine(t, runtime.DefaultConfig())

	resp := start(t, engine, "sess-1", "2")

	// The wildcard option has no label, so the page shows only its title.
	assert.Equal(t, "Enter recipient phone number:", resp.Message)
	assert.True(t, resp.ContinueSession)
	assert.Equal(t, "recipient", storedSession(t, store, "sess-1").CurrentPage)
}

func TestEngine_TerminalPageEndsSession(t *testing.T) {
	engine, _ := newTestEngine(t, runtime.DefaultConfig())

	resp := start(t, engine, "sess-1", "3")

	assert.Equal(t, "Goodbye!", resp.Message)
	assert.False(t, resp.ContinueSession)
}

func TestEngine_InvalidInputRerendersWithPrefix(t *testing.T) {
	engine, store := newTestEngine(t, runtime.DefaultConfig())

	resp := start(t, engine, "sess-1", "99")

	assert.Equal(t, "Invalid option. Please try again.\nWelcome to Demo Bank\n1. Check Balance\n2. Transfer Money\n3. Goodbye\n4. Exit\n5. Offers", resp.Message)
	assert.True(t, resp.ContinueSession)
	assert.Equal(t, "main", storedSession(t, store, "sess-1").CurrentPage)
}

func TestEngine_OptionWithoutTargetOrActionEndsSession(t *testing.T) {
	engine, _ := newTestEngine(t, runtime.DefaultConfig())

	resp := start(t, engine, "sess-1", "4")

	assert.Equal(t, "Thank you for using our service.", resp.Message)
	assert.False(t, resp.ContinueSession)
}

func TestEngine_HandlerReplyIsReturnedAsIs(t *testing.T) {
	engine, _ := newTestEngine(t, runtime.DefaultConfig())

	resp := start(t, engine, "sess-1", "1")

	assert.Equal(t, "Your balance is GHS 120.00.", resp.Message)
	assert.False(t, resp.ContinueSession)
}

// A handler that requests navigation has its own message replaced by the
// destination page's rendered content. Menus rely on this framing; do not
// "fix" it.
func TestEngine_HandlerNavigationDiscardsItsMessage(t *testing.T) {
	engine, store := newTestEngine(t, runtime.DefaultConfig())

	resp := start(t, engine, "sess-1", "2", "233200000002")

	assert.Equal(t, "Transfer sent.", resp.Message)
	assert.NotContains(t, resp.Message, "handler text")
	assert.False(t, resp.ContinueSession, "the destination page is terminal")

	session := storedSession(t, store, "sess-1")
	assert.Equal(t, "confirm", session.CurrentPage)

	recipient, ok := domain.Get(session, keyRecipient)
	require.True(t, ok, "handler mutations on the live session are persisted")
	assert.Equal(t, "233200000002", recipient)
}

func TestEngine_MissingHandlerFallsThroughToTarget(t *testing.T) {
	engine, _ := newTestEngine(t, runtime.DefaultConfig())

	resp := start(t, engine, "sess-1", "5")

	assert.Equal(t, "Goodbye!", resp.Message)
	assert.False(t, resp.ContinueSession)
}

func TestEngine_HandlerErrorFailsRequest(t *testing.T) {
	menu, err := builder.New("broken").
		Root("main").
		Page("main", "Menu").
		Option("1", "Boom").Action("boom").
		Build()
	require.NoError(t, err)

	reg := registry.New()
	reg.MustRegister(ports.HandlerFunc{
		ActionKey: "boom",
		Fn: func(ctx context.Context, uc *domain.Context) (domain.StepResult, error) {
			return domain.StepResult{}, errors.New("downstream unavailable")
		},
	})

	store := memory.NewStore()
	engine := runtime.NewEngine(menu, store, reg, runtime.DefaultConfig())

	_, err = engine.HandleRequest(context.Background(), newSessionRequest("sess-1"))
	require.NoError(t, err)

	_, err = engine.HandleRequest(context.Background(), inputRequest("sess-1", "1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `action "boom"`)
}

func TestEngine_HomeCommandResetsToRoot(t *testing.T) {
	engine, store := newTestEngine(t, runtime.DefaultConfig())

	resp := start(t, engine, "sess-1", "2", "00")

	assert.Contains(t, resp.Message, "Welcome to Demo Bank")
	assert.True(t, resp.ContinueSession)

	session := storedSession(t, store, "sess-1")
	assert.Equal(t, "main", session.CurrentPage)
	assert.Equal(t, 2, session.Level, "reset to 1, then one render")
}

func TestEngine_BackNavigation(t *testing.T) {
	t.Run("collapses to root from depth two", func(t *testing.T) {
		engine, store := newTestEngine(t, runtime.DefaultConfig())

		// A session that has rendered exactly one page sits at level 2.
		session := domain.NewSession("sess-1", "233200000001", "", "MTN", "recipient")
		session.Level = 2
		require.NoError(t, store.Set(context.Background(), session, time.Minute))

		resp, err := engine.HandleRequest(context.Background(), inputRequest("sess-1", "0"))
		require.NoError(t, err)

		assert.Equal(t, "Going back...\nWelcome to Demo Bank\n1. Check Balance\n2. Transfer Money\n3. Goodbye\n4. Exit\n5. Offers", resp.Message)
		assert.Equal(t, "main", storedSession(t, store, "sess-1").CurrentPage)
	})

	t.Run("deeper levels re-render the current page", func(t *testing.T) {
		// There is no history stack: above depth two, back cannot know the
		// previous page and re-renders the current one.
		engine, store := newTestEngine(t, runtime.DefaultConfig())

		resp := start(t, engine, "sess-1", "2", "0")

		assert.Equal(t, "Going back...\nEnter recipient phone number:", resp.Message)
		assert.Equal(t, "recipient", storedSession(t, store, "sess-1").CurrentPage)
	})

	t.Run("at root the token is ordinary input", func(t *testing.T) {
		engine, store := newTestEngine(t, runtime.DefaultConfig())

		session := domain.NewSession("sess-1", "233200000001", "", "MTN", "main")
		require.NoError(t, store.Set(context.Background(), session, time.Minute))

		resp, err := engine.HandleRequest(context.Background(), inputRequest("sess-1", "0"))
		require.NoError(t, err)

		assert.Contains(t, resp.Message, "Invalid option. Please try again.")
	})

	t.Run("disabled back is ordinary input", func(t *testing.T) {
		cfg := runtime.DefaultConfig()
		cfg.EnableAutoBackNavigation = false
		engine, _ := newTestEngine(t, cfg)

		resp := start(t, engine, "sess-1", "2", "0")

		// The recipient page's wildcard captures "0" and runs the transfer
		// handler instead of navigating back.
		assert.Equal(t, "Transfer sent.", resp.Message)
	})
}

func TestEngine_UnknownPageFailsRequest(t *testing.T) {
	engine, store := newTestEngine(t, runtime.DefaultConfig())

	session := domain.NewSession("sess-1", "233200000001", "", "MTN", "vanished")
	require.NoError(t, store.Set(context.Background(), session, time.Minute))

	_, err := engine.HandleRequest(context.Background(), inputRequest("sess-1", "1"))
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestEngine_StoreFailureFailsRequest(t *testing.T) {
	menu := demoMenu(t)
	engine := runtime.NewEngine(menu, failingStore{}, demoHandlers(t), runtime.DefaultConfig())

	_, err := engine.HandleRequest(context.Background(), newSessionRequest("sess-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load session")
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return nil, errors.New("store offline")
}

func (failingStore) Set(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	return errors.New("store offline")
}

func (failingStore) Remove(ctx context.Context, sessionID string) error {
	return errors.New("store offline")
}
