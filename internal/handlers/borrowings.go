package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary      Active borrowings of the signed-in user
// @Tags         borrowings
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/borrowings/ [get]
// @Security     BearerAuth
func (h *Handler) listActiveBorrowings(c *gin.Context) {
	borrowings, err := h.services.Borrowing.ListActive(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, "borrowings_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"borrowings": borrowings})
}

// @Summary      Renew a borrowing
// @Description  Extends the due date by 14 days from the current due date.
// @Tags         borrowings
// @Produce      json
// @Param        id   path      int  true  "Borrowing ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/borrowings/{id}/renew [post]
// @Security     BearerAuth
func (h *Handler) renewBorrowing(c *gin.Context) {
	borrowingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid borrowing id"})
		return
	}

	borrowing, err := h.services.Borrowing.Renew(c.Request.Context(), borrowingID)
	if err != nil {
		h.respondError(c, "borrowings_renew_failed", err, "borrowing_id", borrowingID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "renewed", "borrowing": borrowing})
}

// @Summary      Return a borrowed book
// @Tags         borrowings
// @Produce      json
// @Param        id   path      int  true  "Borrowing ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/borrowings/{id}/return [post]
// @Security     BearerAuth
func (h *Handler) returnBorrowing(c *gin.Context) {
	borrowingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid borrowing id"})
		return
	}

	borrowing, err := h.services.Borrowing.Return(c.Request.Context(), currentUserID(c), borrowingID)
	if err != nil {
		h.respondError(c, "borrowings_return_failed", err, "borrowing_id", borrowingID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "returned", "borrowing": borrowing})
}
