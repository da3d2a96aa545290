package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sd-store/catalog-service/internal/catalog/domain"
	"github.com/sd-store/catalog-service/internal/catalog/usecase/command"
	"github.com/sd-store/catalog-service/internal/catalog/usecase/query"
	userdomain "github.com/sd-store/catalog-service/internal/user/domain"
	"github.com/sd-store/catalog-service/pkg/logger"
)

// ProductHandler exposes the catalog operations over HTTP.
type ProductHandler struct {
	addHandler         *command.AddProductHandler
	updateHandler      *command.UpdateProductHandler
	changePriceHandler *command.ChangePriceHandler
	deleteHandler      *command.DeleteProductHandler

	getHandler         *query.GetProductHandler
	listHandler        *query.ListProductsHandler
	searchHandler      *query.SearchProductsHandler
	stockStatusHandler *query.GetStockStatusHandler
	healthHandler      *query.GetHealthHandler

	repo     domain.ProductRepository
	validate *validator.Validate

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewProductHandler wires the command and query handlers into an HTTP
// handler and registers its Prometheus collectors.
func NewProductHandler(
	addHandler *command.AddProductHandler,
	updateHandler *command.UpdateProductHandler,
	changePriceHandler *command.ChangePriceHandler,
	deleteHandler *command.DeleteProductHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	searchHandler *query.SearchProductsHandler,
	stockStatusHandler *query.GetStockStatusHandler,
	healthHandler *query.GetHealthHandler,
	repo domain.ProductRepository,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to the catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_total_products",
			Help: "Total number of products in the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalProducts)

	return &ProductHandler{
		addHandler:         addHandler,
		updateHandler:      updateHandler,
		changePriceHandler: changePriceHandler,
		deleteHandler:      deleteHandler,
		getHandler:         getHandler,
		listHandler:        listHandler,
		searchHandler:      searchHandler,
		stockStatusHandler: stockStatusHandler,
		healthHandler:      healthHandler,
		repo:               repo,
		validate:           newValidator(),
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		totalProducts:      totalProducts,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware records request count and latency per endpoint.
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers all product routes. Write access is restricted to
// admin and manager; reads require any staff role; delete is admin only.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	staff := RequireRoles(userdomain.RoleAdmin, userdomain.RoleManager, userdomain.RoleEmployee)
	managers := RequireRoles(userdomain.RoleAdmin, userdomain.RoleManager)
	admins := RequireRoles(userdomain.RoleAdmin)

	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", managers(h.AddProduct))).Methods("POST")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", staff(h.ListProducts))).Methods("GET")
	router.HandleFunc("/api/products/paginated", h.metricsMiddleware("/api/products/paginated", staff(h.ListProductsPaginated))).Methods("GET")
	router.HandleFunc("/api/products/search", h.metricsMiddleware("/api/products/search", staff(h.SearchProducts))).Methods("GET")
	router.HandleFunc("/api/products/search/paginated", h.metricsMiddleware("/api/products/search/paginated", staff(h.SearchProductsPaginated))).Methods("GET")
	router.HandleFunc("/api/products/by-name/{name}", h.metricsMiddleware("/api/products/by-name/{name}", staff(h.GetProductByName))).Methods("GET")
	router.HandleFunc("/api/products/{id:[0-9]+}", h.metricsMiddleware("/api/products/{id}", staff(h.GetProduct))).Methods("GET")
	router.HandleFunc("/api/products/{id:[0-9]+}/status", h.metricsMiddleware("/api/products/{id}/status", staff(h.GetStockStatus))).Methods("GET")
	router.HandleFunc("/api/products/{id:[0-9]+}", h.metricsMiddleware("/api/products/{id}", managers(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id:[0-9]+}/price", h.metricsMiddleware("/api/products/{id}/price", managers(h.ChangePrice))).Methods("PATCH")
	router.HandleFunc("/api/products/{id:[0-9]+}", h.metricsMiddleware("/api/products/{id}", admins(h.DeleteProduct))).Methods("DELETE")

	router.HandleFunc("/api/metrics/health", h.metricsMiddleware("/api/metrics/health", h.GetHealth)).Methods("GET")
}

// RegisterHealthCheck registers the liveness endpoint.
func (h *ProductHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}
		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Catalog service is healthy",
		})
	}).Methods("GET")
}

// AddProduct handles POST /api/products
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: validationMessage(err)})
		return
	}

	product, err := h.addHandler.Handle(r.Context(), command.AddProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to add product")
		return
	}

	h.updateProductsMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product added successfully",
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listHandler.Handle()
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// ListProductsPaginated handles GET /api/products/paginated
func (h *ProductHandler) ListProductsPaginated(w http.ResponseWriter, r *http.Request) {
	page, err := h.listHandler.HandlePaged(pagedQuery(r, 4))
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to page products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: page})
}

// SearchProducts handles GET /api/products/search
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	products, err := h.searchHandler.Handle(query.SearchProductsQuery{Name: name})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to search products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to search products"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// SearchProductsPaginated handles GET /api/products/search/paginated
func (h *ProductHandler) SearchProductsPaginated(w http.ResponseWriter, r *http.Request) {
	pq := pagedQuery(r, 10)
	page, err := h.searchHandler.HandlePaged(query.SearchProductsPagedQuery{
		Name:    r.URL.Query().Get("name"),
		Page:    pq.Page,
		Size:    pq.Size,
		SortBy:  pq.SortBy,
		SortDir: pq.SortDir,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to search products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to search products"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: page})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to get product")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// GetProductByName handles GET /api/products/by-name/{name}
func (h *ProductHandler) GetProductByName(w http.ResponseWriter, r *http.Request) {
	product, err := h.getHandler.HandleByName(query.GetProductByNameQuery{Name: mux.Vars(r)["name"]})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to get product")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// GetStockStatus handles GET /api/products/{id}/status
func (h *ProductHandler) GetStockStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	status, err := h.stockStatusHandler.Handle(query.GetStockStatusQuery{ID: id})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to get stock status")
		return
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"status": status},
	})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: validationMessage(err)})
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// ChangePrice handles PATCH /api/products/{id}/price
func (h *ProductHandler) ChangePrice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ChangePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: validationMessage(err)})
		return
	}

	product, err := h.changePriceHandler.Handle(r.Context(), command.ChangePriceCommand{
		ID:       id,
		NewPrice: req.Price,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to change price")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Price changed successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		h.respondDomainError(w, r, err, "Failed to delete product")
		return
	}

	h.updateProductsMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// GetHealth handles GET /api/metrics/health. The aggregator converts read
// failures into a DOWN verdict, so this endpoint always answers. A verdict
// computed from the counts is a 200 even when it is DOWN; only a failure
// reading the counts is a server error.
func (h *ProductHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := h.healthHandler.Handle(r.Context())

	status := http.StatusOK
	if report.ReadFailed {
		status = http.StatusInternalServerError
	}
	respondJSON(w, status, Response{Success: !report.ReadFailed, Data: report})
}

func (h *ProductHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
	case errors.Is(err, domain.ErrDuplicateName):
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidData):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	default:
		logger.Error(r.Context()).Err(err).Msg(logMsg)
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: logMsg})
	}
}

func (h *ProductHandler) updateProductsMetric() {
	if count, err := h.repo.Count(); err == nil {
		h.totalProducts.Set(float64(count))
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}

// pagedQuery parses the common pagination query parameters.
func pagedQuery(r *http.Request, defaultSize int) query.ListProductsPagedQuery {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = defaultSize
	}
	sortBy := r.URL.Query().Get("sortBy")
	if sortBy == "" {
		sortBy = "id"
	}
	return query.ListProductsPagedQuery{
		Page:    page,
		Size:    size,
		SortBy:  sortBy,
		SortDir: r.URL.Query().Get("sortDir"),
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
