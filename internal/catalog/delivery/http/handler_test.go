package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sd-store/catalog-service/internal/catalog/repository"
	"github.com/sd-store/catalog-service/internal/catalog/usecase/command"
	"github.com/sd-store/catalog-service/internal/catalog/usecase/query"
	userdomain "github.com/sd-store/catalog-service/internal/user/domain"
	"github.com/sd-store/catalog-service/pkg/auth"
)

var (
	routerOnce sync.Once
	testRouter *mux.Router
	routerErr  error
)

// setupRouter builds the full handler stack once per test binary; the
// Prometheus collectors may only be registered a single time.
func setupRouter(t *testing.T) *mux.Router {
	t.Helper()
	routerOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open("file:handler_test?mode=memory&cache=shared"), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			routerErr = err
			return
		}

		repo := repository.NewGormProductRepository(db)
		if routerErr = repo.AutoMigrate(); routerErr != nil {
			return
		}

		handler := NewProductHandler(
			command.NewAddProductHandler(repo, nil),
			command.NewUpdateProductHandler(repo, nil),
			command.NewChangePriceHandler(repo, nil),
			command.NewDeleteProductHandler(repo, nil),
			query.NewGetProductHandler(repo),
			query.NewListProductsHandler(repo),
			query.NewSearchProductsHandler(repo),
			query.NewGetStockStatusHandler(repo),
			query.NewGetHealthHandler(repo, query.DefaultHealthThresholds()),
			repo,
		)

		testRouter = mux.NewRouter()
		handler.RegisterRoutes(testRouter)
	})
	require.NoError(t, routerErr)
	return testRouter
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(1, "tester", role)
	require.NoError(t, err)
	return tok
}

func doRequest(t *testing.T, router *mux.Router, method, path, role string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, role))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func productBody(name string, price string, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": "A product created by the handler tests",
		"price":       json.Number(price),
		"quantity":    quantity,
		"category":    "Electronics",
	}
}

func TestProductAPI(t *testing.T) {
	router := setupRouter(t)

	var laptopID uint

	t.Run("create", func(t *testing.T) {
		rec := doRequest(t, router, "POST", "/api/products", userdomain.RoleManager,
			productBody("Laptop", "7999.99", 10))

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decode(t, rec)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		laptopID = uint(data["id"].(float64))
		assert.NotZero(t, laptopID)
		assert.Equal(t, "Laptop", data["name"])
	})

	t.Run("create duplicate name", func(t *testing.T) {
		rec := doRequest(t, router, "POST", "/api/products", userdomain.RoleManager,
			productBody("Laptop", "100.00", 1))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.False(t, decode(t, rec).Success)
	})

	t.Run("create invalid price precision", func(t *testing.T) {
		rec := doRequest(t, router, "POST", "/api/products", userdomain.RoleManager,
			productBody("Mouse", "9.999", 5))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create short description", func(t *testing.T) {
		body := productBody("Mouse", "9.99", 5)
		body["description"] = "too short"
		rec := doRequest(t, router, "POST", "/api/products", userdomain.RoleManager, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		rec := doRequest(t, router, "GET", fmt.Sprintf("/api/products/%d", laptopID), userdomain.RoleEmployee, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec).Data.(map[string]interface{})
		assert.Equal(t, "Laptop", data["name"])
	})

	t.Run("get by exact name", func(t *testing.T) {
		rec := doRequest(t, router, "GET", "/api/products/by-name/Laptop", userdomain.RoleEmployee, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec).Data.(map[string]interface{})
		assert.EqualValues(t, laptopID, data["id"])

		rec = doRequest(t, router, "GET", "/api/products/by-name/laptop", userdomain.RoleEmployee, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("get unknown id", func(t *testing.T) {
		rec := doRequest(t, router, "GET", "/api/products/99999", userdomain.RoleEmployee, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("stock status", func(t *testing.T) {
		rec := doRequest(t, router, "GET", fmt.Sprintf("/api/products/%d/status", laptopID), userdomain.RoleEmployee, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec).Data.(map[string]interface{})
		assert.Equal(t, "IN_STOCK", data["status"])
	})

	t.Run("search", func(t *testing.T) {
		rec := doRequest(t, router, "GET", "/api/products/search?name=lap", userdomain.RoleEmployee, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		items := decode(t, rec).Data.([]interface{})
		require.Len(t, items, 1)
	})

	t.Run("list paginated", func(t *testing.T) {
		rec := doRequest(t, router, "GET", "/api/products/paginated?page=0&size=2&sortBy=name", userdomain.RoleEmployee, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec).Data.(map[string]interface{})
		assert.EqualValues(t, 1, data["total_items"])
	})

	t.Run("update", func(t *testing.T) {
		rec := doRequest(t, router, "PUT", fmt.Sprintf("/api/products/%d", laptopID), userdomain.RoleManager,
			productBody("Laptop", "7999.99", 3))

		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec).Data.(map[string]interface{})
		assert.EqualValues(t, 3, data["quantity"])
	})

	t.Run("change price", func(t *testing.T) {
		rec := doRequest(t, router, "PATCH", fmt.Sprintf("/api/products/%d/price", laptopID), userdomain.RoleManager,
			map[string]interface{}{"price": json.Number("6499.00")})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode(t, rec).Success)
	})

	t.Run("health is public", func(t *testing.T) {
		rec := doRequest(t, router, "GET", "/api/metrics/health", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec).Data.(map[string]interface{})
		assert.Equal(t, "UP", data["status"])
	})

	t.Run("delete requires admin", func(t *testing.T) {
		rec := doRequest(t, router, "DELETE", fmt.Sprintf("/api/products/%d", laptopID), userdomain.RoleManager, nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doRequest(t, router, "DELETE", fmt.Sprintf("/api/products/%d", laptopID), userdomain.RoleAdmin, nil)

		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, router, "GET", fmt.Sprintf("/api/products/%d", laptopID), userdomain.RoleAdmin, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductAPIAuthorization(t *testing.T) {
	router := setupRouter(t)

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(t, router, "GET", "/api/products", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/products", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("employee cannot write", func(t *testing.T) {
		rec := doRequest(t, router, "POST", "/api/products", userdomain.RoleEmployee,
			productBody("Keyboard", "49.99", 5))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("plain user cannot read", func(t *testing.T) {
		rec := doRequest(t, router, "GET", "/api/products", userdomain.RoleUser, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

// A DOWN verdict computed from the counts is still a successful health
// reading; only a failure reading the counts is a server error.
func TestHealthVerdictDownIsStillOK(t *testing.T) {
	router := setupRouter(t)

	for i := 0; i < 6; i++ {
		rec := doRequest(t, router, "POST", "/api/products", userdomain.RoleManager,
			productBody(fmt.Sprintf("Empty Shelf %d", i), "19.99", 0))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doRequest(t, router, "GET", "/api/metrics/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "DOWN", data["status"])
}
