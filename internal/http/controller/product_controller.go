package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feirafacil/catalogo-service/internal/metrics"
	"github.com/feirafacil/catalogo-service/internal/model"
	"github.com/feirafacil/catalogo-service/internal/schema"
	"github.com/feirafacil/catalogo-service/internal/service"
	"github.com/feirafacil/catalogo-service/internal/store"
)

// ProductController handles HTTP requests for product operations. Write
// endpoints re-run the schema on the raw payload before anything reaches
// the store; the store validates again on its own.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ListProducts handles GET /api/produtos.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.productService.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}

	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/produtos/:id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := pc.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// ValidateProduct handles POST /api/validar-produto. It runs the schema
// against the payload without touching the store, so clients can check
// a form before submitting it.
func (pc *ProductController) ValidateProduct(c *gin.Context) {
	var in schema.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res := schema.Validate(in)
	if !res.Valido {
		c.JSON(http.StatusBadRequest, gin.H{"valido": false, "erros": res.Erros})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valido": true})
}

// CreateProduct handles POST /api/produtos.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var in schema.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !pc.rejectInvalid(c, in) {
		return
	}

	created, err := pc.productService.CreateProduct(c.Request.Context(), in)
	if err != nil {
		pc.writeFailure(c, err, "failed to create product")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateProduct handles PUT /api/produtos/:id.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in schema.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !pc.rejectInvalid(c, in) {
		return
	}

	updated, err := pc.productService.UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		pc.writeFailure(c, err, "failed to update product")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProduct handles DELETE /api/produtos/:id. Deleting an id twice
// yields 204 then 404.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := pc.productService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// rejectInvalid is the authoritative boundary check. It reports whether
// the payload may proceed; on failure it writes the full ordered error
// list, so the caller can fix every field in one pass.
func (pc *ProductController) rejectInvalid(c *gin.Context, in schema.ProductInput) bool {
	res := schema.Validate(in)
	if !res.Valido {
		metrics.ValidationRejections.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"valido": false, "erros": res.Erros})
		return false
	}
	return true
}

// writeFailure maps a service error onto the wire. Store-level
// validation rejections keep the same envelope as the boundary check;
// anything else is a generic 500 with no internal detail.
func (pc *ProductController) writeFailure(c *gin.Context, err error, genericMsg string) {
	var vErr *schema.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"valido": false, "erros": vErr.Erros})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": genericMsg})
}

// parseID reads the :id route param. A non-integer id is a 400, kept
// distinct from the 404 for a well-formed id with no record.
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return 0, false
	}
	return id, true
}
