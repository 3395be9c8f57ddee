package inspect_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/inspect"
	"github.com/km-arc/go-autowire/framework/routing"
)

type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func newServer(t *testing.T) (*container.Container, *routing.Router) {
	t.Helper()

	table, err := container.NewAliasTable(map[string]string{"contracts.transport": "smtp"})
	require.NoError(t, err)

	c := container.New(container.WithAliases(table))
	ctor := func(_ context.Context, args []any) (any, error) { return len(args), nil }
	require.NoError(t, c.Abstract("contracts.transport"))
	require.NoError(t, c.Define("smtp").Using(ctor))
	require.NoError(t, c.Define("mailer").Needs("contracts.transport").Takes("from").Using(ctor))
	require.NoError(t, c.Define("broken").Needs("ghost").Using(ctor))

	r := routing.New(nil)
	inspect.New(c).Routes(r)
	return c, r
}

func get[T any](t *testing.T, r http.Handler, path string) (int, envelope[T]) {
	t.Helper()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

	var body envelope[T]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return rr.Code, body
}

func TestSummary(t *testing.T) {
	t.Parallel()

	c, r := newServer(t)
	_, err := c.Create(context.Background(), "smtp")
	require.NoError(t, err)

	code, body := get[inspect.Summary](t, r, "/container")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, inspect.Summary{
		ID:        c.ID(),
		Types:     5, // four declared plus the container itself
		Instances: 2,
		Aliases:   1,
		Sealed:    true,
	}, body.Data)
}

func TestResponsesAreNotCached(t *testing.T) {
	t.Parallel()

	_, r := newServer(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/container/aliases", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Cache-Control"), "no-store")
}

func TestTypes(t *testing.T) {
	t.Parallel()

	c, r := newServer(t)

	code, body := get[[]container.TypeInfo](t, r, "/container/types")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, c.Graph(), body.Data)
	assert.False(t, c.Sealed(), "listing types must not seal the container")
}

func TestTypeDetail(t *testing.T) {
	t.Parallel()

	_, r := newServer(t)

	code, body := get[inspect.TypeDetail](t, r, "/container/types/Mailer")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, ".mailer", body.Data.ID)
	assert.Equal(t, []string{".contracts.transport"}, body.Data.Dependencies)
	assert.Equal(t, []string{"from"}, body.Data.Scalars)
	assert.Equal(t, []string{".mailer", ".smtp"}, body.Data.Tree)
	assert.Nil(t, body.Data.Error)
}

func TestTypeDetail_FollowsAlias(t *testing.T) {
	t.Parallel()

	_, r := newServer(t)

	code, body := get[inspect.TypeDetail](t, r, "/container/types/contracts.transport")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, ".smtp", body.Data.ID)
	assert.Equal(t, []string{".smtp"}, body.Data.Tree)
}

func TestTypeDetail_TreeError(t *testing.T) {
	t.Parallel()

	_, r := newServer(t)

	code, body := get[inspect.TypeDetail](t, r, "/container/types/broken")
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, body.Data.Error)
	assert.Equal(t, "TYPE_NOT_FOUND", body.Data.Error.Code)
	assert.Equal(t, []string{".broken", ".ghost"}, body.Data.Error.Chain)
	assert.Empty(t, body.Data.Tree)
}

func TestTypeDetail_NotFound(t *testing.T) {
	t.Parallel()

	_, r := newServer(t)

	code, body := get[any](t, r, "/container/types/nothing.here")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "TYPE_NOT_FOUND", body.Code)
}

func TestAliasesAndInstances(t *testing.T) {
	t.Parallel()

	c, r := newServer(t)
	_, err := c.Create(context.Background(), "contracts.transport")
	require.NoError(t, err)

	_, aliases := get[map[string]string](t, r, "/container/aliases")
	assert.Equal(t, map[string]string{".contracts.transport": ".smtp"}, aliases.Data)

	_, instances := get[[]string](t, r, "/container/instances")
	assert.Equal(t, c.Instances(), instances.Data)
	assert.Contains(t, instances.Data, ".smtp")
}
