package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommerce-api/internal/apperror"
)

// Pagination describes a page of results: pages = ceil(total / limit).
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// Response is the envelope every endpoint returns.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	SessionID  string      `json:"sessionId,omitempty"`
}

func newPagination(page, limit int, total int64) *Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps operational errors to their HTTP status; anything
// unexpected is logged and masked as a 500.
func respondError(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Println("unexpected error:", err)
	}
	c.JSON(status, Response{
		Success: false,
		Message: apperror.MessageOf(err),
	})
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: err.Error(),
	})
}
