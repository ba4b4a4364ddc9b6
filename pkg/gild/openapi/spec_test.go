package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildlabs/gild/pkg/gild"
)

func TestRouteBuilders_Verbs(t *testing.T) {
	assert.Equal(t, "GET /x", Get("/x").Key())
	assert.Equal(t, "POST /x", Post("/x").Key())
	assert.Equal(t, "PUT /x", Put("/x").Key())
	assert.Equal(t, "PATCH /x", Patch("/x").Key())
	assert.Equal(t, "DELETE /x", Delete("/x").Key())
	assert.Equal(t, "HEAD /x", Head("/x").Key())
	assert.Equal(t, "OPTIONS /x", Options("/x").Key())
	assert.Equal(t, "TRACE /x", Route("trace", "/x").Key(), "verbs normalize to upper case")
}

func TestRouteSpec_ApplyRequiresVerbAndPath(t *testing.T) {
	reg := gild.NewRegistry()
	site := gild.Class("BookController").Method("find")

	err := (&RouteSpec{Path: "/books"}).Apply(reg, site)
	require.Error(t, err)

	err = (&RouteSpec{Verb: "GET"}).Apply(reg, site)
	require.Error(t, err)

	_, ok := reg.Resolve(site, gild.KindRoute)
	assert.False(t, ok)
}

func TestRouteSpec_ApplyFillsHandlerFromSite(t *testing.T) {
	reg := gild.NewRegistry()
	site := gild.Class("BookController").Method("find")

	require.NoError(t, Get("/").Apply(reg, site))

	payload, ok := reg.Resolve(site, gild.KindRoute)
	require.True(t, ok)
	assert.Equal(t, "find", payload.(*RouteSpec).Handler)
}

func TestApiSpec_ApplyRejectsUnboundOperations(t *testing.T) {
	reg := gild.NewRegistry()
	class := gild.Class("BookController")

	api := Api("/books")
	api.Operations = append(api.Operations, Get("/")) // No handler bound

	err := api.Apply(reg, class)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not bound to a method")
}

func TestApiSpec_ApplyNormalizesToClassSite(t *testing.T) {
	reg := gild.NewRegistry()
	method := gild.Class("BookController").Method("find")

	// Applying through a member site still records at class level
	require.NoError(t, Api("/books").Apply(reg, method))

	_, ok := reg.Resolve(gild.Class("BookController"), gild.KindRoute)
	assert.True(t, ok)
}

func TestApiSpec_MergeAppendsOperations(t *testing.T) {
	first := Api("/books").WithTags("books").WithOperation("find", Get("/"))
	second := Api("").WithOperation("create", Post("/"))

	merged := second.Merge(first).(*ApiSpec)
	assert.Equal(t, "/books", merged.BasePath, "zero base path inherits")
	assert.Equal(t, []string{"books"}, merged.Tags)
	require.Len(t, merged.Operations, 2)
	assert.Equal(t, "find", merged.Operations[0].Handler)
	assert.Equal(t, "create", merged.Operations[1].Handler)
}
