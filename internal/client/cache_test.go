package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feirafacil/catalogo-service/internal/client"
	"github.com/feirafacil/catalogo-service/internal/config"
	httpAPI "github.com/feirafacil/catalogo-service/internal/http"
	"github.com/feirafacil/catalogo-service/internal/http/controller"
	"github.com/feirafacil/catalogo-service/internal/schema"
	"github.com/feirafacil/catalogo-service/internal/service"
	"github.com/feirafacil/catalogo-service/internal/store/memory"
)

func intPtr(i int) *int { return &i }

func validInput(nome string) schema.ProductInput {
	return schema.ProductInput{
		Nome:      nome,
		Preco:     "9.90",
		Categoria: schema.CategoriaFruta,
		Estoque:   intPtr(5),
		Unidade:   "kg",
	}
}

// startAPI runs the real router over an in-memory store and counts
// every request the cache issues against it.
func startAPI(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	productService := service.NewProductService(memory.New(), nil)
	router := gin.New()
	cfg := &config.Config{}
	httpAPI.InitRouter(cfg, router, controller.New(cfg), controller.NewProductController(productService))

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestCache_RefreshReplacesSnapshot(t *testing.T) {
	server, _ := startAPI(t)
	cache := client.New(server.URL, 0)
	ctx := context.Background()

	assert.False(t, cache.Fresh())
	require.NoError(t, cache.Refresh(ctx))
	assert.True(t, cache.Fresh())
	assert.Empty(t, cache.Products())

	ok, erros := cache.Add(ctx, validInput("Abacate Manso"))
	require.True(t, ok)
	assert.Empty(t, erros)

	products := cache.Products()
	require.Len(t, products, 1, "refresh after write must observe the write")
	assert.Equal(t, "Abacate Manso", products[0].Nome)
	assert.NotZero(t, products[0].ID)
	assert.Equal(t, "", products[0].Descricao)
}

func TestCache_AddRejectsLocallyWithoutNetworkCall(t *testing.T) {
	server, requests := startAPI(t)
	cache := client.New(server.URL, 0)

	in := validInput("Ab")
	in.Preco = "0"

	ok, erros := cache.Add(context.Background(), in)
	assert.False(t, ok)
	assert.Equal(t, []string{schema.MsgNomeCurto, schema.MsgPrecoInvalido}, erros,
		"every violated rule is surfaced, not just the first")
	assert.Zero(t, requests.Load(), "local rejection must not issue a request")
}

func TestCache_EditRejectsLocallyWithoutNetworkCall(t *testing.T) {
	server, requests := startAPI(t)
	cache := client.New(server.URL, 0)

	in := validInput("Abacate Manso")
	in.Unidade = ""

	ok, erros := cache.Edit(context.Background(), 1, in)
	assert.False(t, ok)
	assert.Equal(t, []string{schema.MsgUnidadeVazia}, erros)
	assert.Zero(t, requests.Load())
}

func TestCache_EditUpdatesAndRefreshes(t *testing.T) {
	server, _ := startAPI(t)
	cache := client.New(server.URL, 0)
	ctx := context.Background()

	ok, _ := cache.Add(ctx, validInput("Abacate Manso"))
	require.True(t, ok)
	id := cache.Products()[0].ID

	in := validInput("Abacate Gigante")
	in.Preco = "12.00"
	ok, erros := cache.Edit(ctx, id, in)
	require.True(t, ok)
	assert.Empty(t, erros)

	products := cache.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Abacate Gigante", products[0].Nome)
	assert.Equal(t, "12.00", products[0].Preco)
}

func TestCache_EditSurfacesServerNotFound(t *testing.T) {
	server, _ := startAPI(t)
	cache := client.New(server.URL, 0)

	ok, erros := cache.Edit(context.Background(), 42, validInput("Abacate Manso"))
	assert.False(t, ok)
	require.Len(t, erros, 1)
	assert.Equal(t, "product not found", erros[0])
}

func TestCache_RemoveTwice(t *testing.T) {
	server, _ := startAPI(t)
	cache := client.New(server.URL, 0)
	ctx := context.Background()

	ok, _ := cache.Add(ctx, validInput("Abacate Manso"))
	require.True(t, ok)
	id := cache.Products()[0].ID

	ok, erros := cache.Remove(ctx, id)
	assert.True(t, ok)
	assert.Empty(t, erros)
	assert.Empty(t, cache.Products(), "refresh after delete must observe the removal")

	ok, erros = cache.Remove(ctx, id)
	assert.False(t, ok, "second delete reports failure, not a panic")
	require.Len(t, erros, 1)
	assert.Equal(t, "product not found", erros[0])
}

func TestCache_FailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	server, _ := startAPI(t)
	cache := client.New(server.URL, 2*time.Second)
	ctx := context.Background()

	ok, _ := cache.Add(ctx, validInput("Abacate Manso"))
	require.True(t, ok)
	before := cache.Products()
	require.Len(t, before, 1)

	server.Close()

	err := cache.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, before, cache.Products(), "a failed refresh must not clobber the cache")
}

func TestCache_NetworkFailureIsAValue(t *testing.T) {
	// Point the cache at a closed server: mutations must come back as
	// failed booleans with a message, never as a panic.
	server, _ := startAPI(t)
	url := server.URL
	server.Close()

	cache := client.New(url, time.Second)

	ok, erros := cache.Add(context.Background(), validInput("Abacate Manso"))
	assert.False(t, ok)
	require.Len(t, erros, 1)
	assert.NotEmpty(t, erros[0])
}
