package handlers

import (
	"errors"
	"net/http"

	"kanban_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=255" label:"Email"`
	Name     string `json:"name" form:"name" binding:"required,max=100" label:"Name"`
	Password string `json:"password" form:"password" binding:"required" label:"Password"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required" label:"Email"`
	Password string `json:"password" form:"password" binding:"required" label:"Password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !h.bind(c, &req) {
		return
	}

	user, token, err := h.Auth.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	okMessage(c, "Account created", gin.H{
		"token":      token,
		"csrf_token": h.CSRF.Issue(user.ID),
		"user":       user,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req) {
		return
	}

	user, token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.respondError(c, err)
		return
	}

	ok(c, gin.H{
		"token":      token,
		"csrf_token": h.CSRF.Issue(user.ID),
		"user":       user,
	})
}

// CSRFToken issues a fresh token for the authenticated user.
func (h *Handler) CSRFToken(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	ok(c, gin.H{"csrf_token": h.CSRF.Issue(userID)})
}
