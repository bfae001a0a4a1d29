package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidvanarse/orderManagement/models"
	"github.com/sidvanarse/orderManagement/service"
)

type stubBookStore struct {
	mu    sync.Mutex
	books map[string]models.Book
}

func (s *stubBookStore) Save(_ context.Context, book models.Book) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[book.BookName] = book
	return book, nil
}

func (s *stubBookStore) FindByName(_ context.Context, name string) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[name]
	if !ok {
		return nil, nil
	}
	return &book, nil
}

func (s *stubBookStore) FindAll(_ context.Context) ([]models.Book, error) {
	return nil, nil
}

type stubOrderStore struct {
	mu     sync.Mutex
	seq    int64
	orders map[int64]models.Order
}

func (s *stubOrderStore) Save(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.OrderID == 0 {
		s.seq++
		order.OrderID = s.seq
	}
	s.orders[order.OrderID] = order
	return order, nil
}

func (s *stubOrderStore) FindByID(_ context.Context, id int64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (s *stubOrderStore) FindAll(_ context.Context) ([]models.Order, error) {
	return nil, nil
}

type stubExecutionStore struct {
	mu         sync.Mutex
	seq        int64
	executions []models.Execution
}

func (s *stubExecutionStore) Save(_ context.Context, execution models.Execution) (models.Execution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	execution.ExecutionID = s.seq
	s.executions = append(s.executions, execution)
	return execution, nil
}

func (s *stubExecutionStore) FindAll(_ context.Context) ([]models.Execution, error) {
	return nil, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	books := service.NewBookService(&stubBookStore{books: make(map[string]models.Book)}, log)
	orders := service.NewOrderService(books, &stubOrderStore{orders: make(map[int64]models.Order)}, nil, log)
	executions := service.NewExecutionService(books, orders, &stubExecutionStore{}, nil, log)
	reports := service.NewReportService(books, orders, executions)

	handler := NewHandler(books, orders, executions, reports, log)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/book/:bookName", handler.GetBook)
	api.POST("/book/save/:bookName", handler.SaveBook)
	api.POST("/book/close/:bookName", handler.CloseBook)
	api.POST("/book/open/:bookName", handler.OpenBook)
	api.POST("/order/add", handler.AddOrder)
	api.POST("/order/edit", handler.EditOrder)
	api.POST("/order/delete/:id", handler.DeleteOrder)
	api.POST("/execution/trigger", handler.TriggerExecution)
	api.GET("/report/:bookName", handler.GetReport)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestSaveBookConflictOnDuplicate(t *testing.T) {
	router := newTestRouter()

	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/book/save/B1", "").Code)
	assert.Equal(t, http.StatusConflict, doRequest(router, http.MethodPost, "/api/book/save/B1", "").Code)
}

func TestGetBookNotFound(t *testing.T) {
	router := newTestRouter()

	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/api/book/missing", "").Code)
}

func TestCloseBookUnknown(t *testing.T) {
	router := newTestRouter()

	assert.Equal(t, http.StatusBadRequest, doRequest(router, http.MethodPost, "/api/book/close/missing", "").Code)
}

func TestAddOrderValidationFailure(t *testing.T) {
	router := newTestRouter()

	resp := doRequest(router, http.MethodPost, "/api/order/add", `{"type":"BUY"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "validation_errors")
}

func TestTriggerExecutionOnOpenBookConflicts(t *testing.T) {
	router := newTestRouter()

	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/book/save/B1", "").Code)
	resp := doRequest(router, http.MethodPost, "/api/execution/trigger",
		`{"instrument_id":42,"quantity":10,"type":"OFFER","price":"50","book_name":"B1"}`)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter()

	resp := doRequest(router, http.MethodPost, "/api/order/add",
		`{"instrument_id":42,"quantity":50,"type":"BUY","price":"40","book_name":"B"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var added models.OrderResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &added))
	require.NotZero(t, added.Order.OrderID)
	assert.Equal(t, 50, added.Order.RemainingQuantity)

	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/book/close/B", "").Code)

	resp = doRequest(router, http.MethodPost, "/api/execution/trigger",
		`{"instrument_id":42,"quantity":50,"type":"OFFER","price":"39","book_name":"B"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(router, http.MethodGet, "/api/report/B", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var report models.Report
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &report))
	assert.Equal(t, "Closed", report.BookStatus)
	require.Len(t, report.CompletedOrders, 1)
	assert.Equal(t, 0, report.CompletedOrders[0].RemainingQuantity)
	assert.Empty(t, report.PendingOrders)
	require.Len(t, report.TriggeredExecutions, 1)
}

func TestOpenBookWithPendingOrdersFails(t *testing.T) {
	router := newTestRouter()

	resp := doRequest(router, http.MethodPost, "/api/order/add",
		`{"instrument_id":42,"quantity":50,"type":"BUY","price":"40","book_name":"B"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/book/close/B", "").Code)

	assert.Equal(t, http.StatusFailedDependency, doRequest(router, http.MethodPost, "/api/book/open/B", "").Code)
}

func TestDeleteOrderTwice(t *testing.T) {
	router := newTestRouter()

	resp := doRequest(router, http.MethodPost, "/api/order/add",
		`{"instrument_id":42,"quantity":50,"type":"BUY","price":"40","book_name":"B"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var added models.OrderResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &added))

	path := fmt.Sprintf("/api/order/delete/%d", added.Order.OrderID)
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, path, "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(router, http.MethodPost, path, "").Code)
}
