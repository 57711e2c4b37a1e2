package transport

import (
	"errors"
	"net/http"
	"strconv"

	"products-api/internal/middleware"
	"products-api/internal/repository"
	"products-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Client-facing messages. The wording is part of the API contract.
const (
	MsgInvalidID        = "Id no valido"
	MsgNameRequired     = "El nombre de Producto no puede ir vacio"
	MsgPriceNotNumeric  = "Valor no valido"
	MsgPriceRequired    = "El precio de Producto no puede ir vacio"
	MsgPriceNotPositive = "El precio no es valido"
	MsgInvalidBoolean   = "Disponibilidad no valida"
	MsgProductNotFound  = "Producto no encontrado"
	MsgProductDeleted   = "Producto Eliminado"
)

// CreateProductRequest documents the create payload
type CreateProductRequest struct {
	Name  string  `json:"name" example:"Monitor Curvo"`
	Price float64 `json:"price" example:"300"`
}

// UpdateProductRequest documents the full-update payload
type UpdateProductRequest struct {
	Name         string  `json:"name" example:"Monitor Curvo"`
	Price        float64 `json:"price" example:"300"`
	Availability bool    `json:"availability" example:"true"`
}

// DataResponse is the success envelope shared by every operation
type DataResponse struct {
	Data any `json:"data"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes binds each operation to its method, path, and ordered
// middleware chain: field rules, then the input-error gate, then the handler.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	idRule := middleware.IntParam("id", MsgInvalidID)

	bodyRules := []middleware.Rule{
		middleware.RequiredField("name", MsgNameRequired),
		middleware.NumericField("price", MsgPriceNotNumeric),
		middleware.RequiredField("price", MsgPriceRequired),
		middleware.PositiveField("price", MsgPriceNotPositive),
	}

	updateRules := append([]middleware.Rule{idRule}, bodyRules...)
	updateRules = append(updateRules, middleware.BooleanField("availability", MsgInvalidBoolean))

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.GetProducts)

		r.With(
			middleware.Validate(bodyRules...),
			middleware.HandleInputErrors,
		).Post("/", h.CreateProduct)

		r.With(
			middleware.Validate(idRule),
			middleware.HandleInputErrors,
		).Get("/{id}", h.GetProductByID)

		r.With(
			middleware.Validate(updateRules...),
			middleware.HandleInputErrors,
		).Put("/{id}", h.UpdateProduct)

		r.With(
			middleware.Validate(idRule),
			middleware.HandleInputErrors,
		).Patch("/{id}", h.UpdateAvailability)

		r.With(
			middleware.Validate(idRule),
			middleware.HandleInputErrors,
		).Delete("/{id}", h.DeleteProduct)
	})
}

// GetProducts returns the list of products
//
// @Summary Get a list of products
// @Description Return a list of products ordered by id descending
// @Tags Products
// @Produce json
// @Success 200 {object} transport.DataResponse
// @Router /api/products [get]
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, middleware.MsgInternalError)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DataResponse{Data: products})
}

// GetProductByID returns a single product
//
// @Summary Get a product by ID
// @Description Return a product by its ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} transport.DataResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := h.productID(r)

	product, err := h.productService.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, MsgProductNotFound)
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err), zap.Int64("product_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, middleware.MsgInternalError)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DataResponse{Data: product})
}

// CreateProduct stores a new product
//
// @Summary Create a new product
// @Description Return a new record in the database
// @Tags Products
// @Accept json
// @Produce json
// @Param request body transport.CreateProductRequest true "Product payload"
// @Success 201 {object} transport.DataResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /api/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body := middleware.ParsedBody(r.Context())

	product, err := h.productService.CreateProduct(
		r.Context(),
		cast.ToString(body["name"]),
		cast.ToFloat64(body["price"]),
	)
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, middleware.MsgInternalError)
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, DataResponse{Data: product})
}

// UpdateProduct overwrites an existing product with the request body
//
// @Summary Update a product with user input
// @Description Returns the updated product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body transport.UpdateProductRequest true "Product payload"
// @Success 200 {object} transport.DataResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := h.productID(r)
	body := middleware.ParsedBody(r.Context())

	product, err := h.productService.UpdateProduct(
		r.Context(),
		id,
		cast.ToString(body["name"]),
		cast.ToFloat64(body["price"]),
		cast.ToBool(body["availability"]),
	)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, MsgProductNotFound)
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err), zap.Int64("product_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, middleware.MsgInternalError)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DataResponse{Data: product})
}

// UpdateAvailability flips the availability flag of a product
//
// @Summary Update product availability
// @Description Flips the availability of a product; no body required
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} transport.DataResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/products/{id} [patch]
func (h *ProductHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	id := h.productID(r)

	product, err := h.productService.ToggleAvailability(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, MsgProductNotFound)
			return
		}
		h.logger.Error("Failed to toggle availability", zap.Error(err), zap.Int64("product_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, middleware.MsgInternalError)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DataResponse{Data: product})
}

// DeleteProduct removes a product
//
// @Summary Delete a product
// @Description Removes a product from the database
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} transport.DataResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := h.productID(r)

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, MsgProductNotFound)
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err), zap.Int64("product_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, middleware.MsgInternalError)
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, DataResponse{Data: MsgProductDeleted})
}

// productID reads the id URL parameter. The IntParam rule has already
// rejected non-integer values before any handler runs.
func (h *ProductHandler) productID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
