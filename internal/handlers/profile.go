package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library_catalog/internal/service"
)

// Request DTO for profile edits. Password fields are optional as a trio.
type updateProfileRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

// @Summary      Profile summary
// @Description  Name, email and the reading statistics shown on the profile page.
// @Tags         profile
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/profile/ [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	summary, err := h.services.Profile.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, "profile_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Update profile
// @Description  Edits name/email and optionally rotates the password.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Profile payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/profile/ [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var input updateProfileRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Profile.Update(c.Request.Context(), currentUserID(c), service.ProfileUpdate{
		Name:            input.Name,
		Email:           input.Email,
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		h.respondError(c, "profile_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "user": user})
}
