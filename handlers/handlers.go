package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sidvanarse/orderManagement/models"
	"github.com/sidvanarse/orderManagement/service"
	"github.com/sidvanarse/orderManagement/utils"
)

type Handler struct {
	Books      *service.BookService
	Orders     *service.OrderService
	Executions *service.ExecutionService
	Reports    *service.ReportService
	Validator  *validator.Validate
	Log        zerolog.Logger
}

func NewHandler(books *service.BookService, orders *service.OrderService, executions *service.ExecutionService, reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{
		Books:      books,
		Orders:     orders,
		Executions: executions,
		Reports:    reports,
		Validator:  utils.GetValidator(),
		Log:        log,
	}
}

// statusForError maps the service error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrOrderUnknown),
		errors.Is(err, service.ErrOrderNotAvailable):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrBookAlreadyExists),
		errors.Is(err, service.ErrBookClosed),
		errors.Is(err, service.ErrBookOpen),
		errors.Is(err, service.ErrOrderAlreadyExists),
		errors.Is(err, service.ErrInactiveOrder):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func formatValidationError(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			fields[e.Field()] = "failed on tag '" + e.Tag() + "'"
		}
	}
	return fields
}

// GET /api/book/:bookName
func (h *Handler) GetBook(c *gin.Context) {
	bookName := c.Param("bookName")
	book, err := h.Books.FindByName(c.Request.Context(), bookName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// POST /api/book/save/:bookName
func (h *Handler) SaveBook(c *gin.Context) {
	bookName := c.Param("bookName")
	h.Log.Info().Str("book", bookName).Msg("received save book request")
	if err := h.Books.Save(c.Request.Context(), bookName); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Book saved successfully"})
}

// POST /api/book/close/:bookName
func (h *Handler) CloseBook(c *gin.Context) {
	bookName := c.Param("bookName")
	h.Log.Info().Str("book", bookName).Msg("received close book request")
	if err := h.Books.Close(c.Request.Context(), bookName); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Book closed successfully"})
}

// POST /api/book/open/:bookName
//
// A book holding pending orders cannot be reopened; the check lives here
// rather than in the book service.
func (h *Handler) OpenBook(c *gin.Context) {
	bookName := c.Param("bookName")
	h.Log.Info().Str("book", bookName).Msg("received open book request")
	if !h.Books.Exists(bookName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrBookNotFound.Error()})
		return
	}
	if len(h.Orders.PendingOrders(bookName)) > 0 {
		c.JSON(http.StatusFailedDependency, gin.H{"error": "book can not be opened as it contains pending orders"})
		return
	}
	if err := h.Books.Open(c.Request.Context(), bookName); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Book opened successfully"})
}

// POST /api/order/add
func (h *Handler) AddOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"validation_errors": formatValidationError(err)})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
		return
	}

	order, err := h.Orders.AddOrder(c.Request.Context(), req.ToOrder())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.OrderResponse{Order: *order, Message: "Order added successfully"})
}

// POST /api/order/edit
func (h *Handler) EditOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"validation_errors": formatValidationError(err)})
		return
	}
	if req.OrderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	order, err := h.Orders.EditOrder(c.Request.Context(), req.ToOrder())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.OrderResponse{Order: *order, Message: "Order edited successfully"})
}

// POST /api/order/delete/:id
func (h *Handler) DeleteOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}
	if err := h.Orders.DeleteOrder(c.Request.Context(), orderID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Order deleted successfully"})
}

// POST /api/execution/trigger
func (h *Handler) TriggerExecution(c *gin.Context) {
	var req models.ExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"validation_errors": formatValidationError(err)})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
		return
	}

	execution, err := h.Executions.TriggerExecution(c.Request.Context(), req.ToExecution())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.ExecutionResponse{Execution: *execution, Message: "Execution triggered successfully"})
}

// GET /api/report/:bookName
func (h *Handler) GetReport(c *gin.Context) {
	bookName := c.Param("bookName")
	report, err := h.Reports.GenerateReport(bookName)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
