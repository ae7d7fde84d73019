package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary      List the full catalog
// @Tags         books
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/books/ [get]
// @Security     BearerAuth
func (h *Handler) listBooks(c *gin.Context) {
	books, err := h.services.Catalog.ListBooks(c.Request.Context())
	if err != nil {
		h.respondError(c, "books_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// @Summary      List available books
// @Tags         books
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/books/available [get]
// @Security     BearerAuth
func (h *Handler) listAvailable(c *gin.Context) {
	books, err := h.services.Catalog.ListAvailable(c.Request.Context())
	if err != nil {
		h.respondError(c, "books_list_available_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// @Summary      Recommended books for the dashboard
// @Tags         books
// @Produce      json
// @Param        limit  query     int  false  "How many books (default 3)"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/books/recommended [get]
// @Security     BearerAuth
func (h *Handler) recommendBooks(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			limit = v
		}
	}

	books, err := h.services.Catalog.Recommend(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, "books_recommend_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// @Summary      Reserve a book
// @Description  Opens a 14-day loan and marks the book unavailable.
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/books/{id}/reserve [post]
// @Security     BearerAuth
func (h *Handler) reserveBook(c *gin.Context) {
	bookID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	borrowing, err := h.services.Borrowing.Reserve(c.Request.Context(), currentUserID(c), bookID)
	if err != nil {
		h.respondError(c, "books_reserve_failed", err, "book_id", bookID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reserved", "borrowing": borrowing})
}
