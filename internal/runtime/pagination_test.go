package runtime_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobcode/ussd/internal/runtime"
	"github.com/bobcode/ussd/pkg/adapters/memory"
	"github.com/bobcode/ussd/pkg/builder"
	"github.com/bobcode/ussd/pkg/registry"
)

func paginatedEngine(t *testing.T) (*runtime.Engine, *memory.Store) {
	t.Helper()

	b := builder.New("districts").Root("main")
	page := b.Page("main", "Select your district:")
	for i := 1; i <= 7; i++ {
		page = page.Option(fmt.Sprint(i), fmt.Sprintf("District %d", i)).GoTo("done")
	}
	menu, err := page.
		Page("done", "Registration complete.").Terminal().
		Build()
	require.NoError(t, err)

	cfg := runtime.DefaultConfig()
	cfg.EnablePagination = true
	cfg.ItemsPerPage = 5

	store := memory.NewStore()
	return runtime.NewEngine(menu, store, registry.New(), cfg), store
}

func TestEngine_PaginatedRender(t *testing.T) {
	engine, _ := paginatedEngine(t)

	resp := start(t, engine, "sess-1")

	assert.Equal(t, "Select your district:\n1. District 1\n2. District 2\n3. District 3\n4. District 4\n5. District 5\n#. Next", resp.Message)
}

func TestEngine_NextAndPreviousMoveParts(t *testing.T) {
	engine, store := paginatedEngine(t)

	resp := start(t, engine, "sess-1", "#")

	assert.Equal(t, "Select your district:\n6. District 6\n7. District 7\n*. Previous", resp.Message)
	assert.Equal(t, 2, storedSession(t, store, "sess-1").Part)

	resp = start(t, engine, "sess-2", "#", "*")

	assert.Contains(t, resp.Message, "1. District 1")
	assert.Equal(t, 1, storedSession(t, store, "sess-2").Part)
}

func TestEngine_PartMovementIsBounded(t *testing.T) {
	engine, store := paginatedEngine(t)

	resp := start(t, engine, "sess-1", "#", "#", "#")

	assert.Contains(t, resp.Message, "7. District 7")
	assert.Equal(t, 2, storedSession(t, store, "sess-1").Part, "no part past the last")

	resp = start(t, engine, "sess-2", "*")

	assert.Contains(t, resp.Message, "1. District 1")
	assert.Equal(t, 1, storedSession(t, store, "sess-2").Part, "no part before the first")
}

func TestEngine_SelectionWorksFromAnyPart(t *testing.T) {
	engine, _ := paginatedEngine(t)

	resp := start(t, engine, "sess-1", "#", "7")

	assert.Equal(t, "Registration complete.", resp.Message)
	assert.False(t, resp.ContinueSession)
}

func TestEngine_NavigationResetsPart(t *testing.T) {
	engine, store := paginatedEngine(t)

	start(t, engine, "sess-1", "#", "7")

	assert.Equal(t, 1, storedSession(t, store, "sess-1").Part)
}

func TestEngine_PaginationDisabledListsEverything(t *testing.T) {
	// Same menu, pagination off: the whole listing renders at once.
	b := builder.New("districts").Root("main")
	page := b.Page("main", "Select your district:")
	for i := 1; i <= 7; i++ {
		page = page.Option(fmt.Sprint(i), fmt.Sprintf("District %d", i)).GoTo("done")
	}
	menu, err := page.
		Page("done", "Registration complete.").Terminal().
		Build()
	require.NoError(t, err)

	engine := runtime.NewEngine(menu, memory.NewStore(), registry.New(), runtime.DefaultConfig())

	resp := start(t, engine, "sess-1")

	assert.Contains(t, resp.Message, "7. District 7")
	assert.NotContains(t, resp.Message, "#. Next")
}
