package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"home-ledger/internal/domain"
	"home-ledger/internal/service"
)

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r userRequest) input() service.UserInput {
	return service.UserInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (h *Handler) userToResponse(c *gin.Context, user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: formatTime(user.CreatedAt),
		UpdatedAt: formatTime(user.UpdatedAt),
	}
	url, err := h.users.AvatarURL(c.Request.Context(), user, h.avatarURLTTL)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Warn("avatar url unavailable")
	}
	resp.AvatarURL = url
	return resp
}

func (h *Handler) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created", "id": user.ID})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, expires, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"token":     token,
		"expiresAt": formatTime(expires),
	})
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), principal(c), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": h.userToResponse(c, user)})
}

func (h *Handler) updateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), principal(c), c.Param("userId"), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "id": user.ID})
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), principal(c), c.Param("userId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	// ownership is checked before the upload is read
	caller := principal(c)
	if err := caller.Authorize(c.Param("userId")); err != nil {
		h.fail(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAvatarBytes+(1<<20))
	header, err := c.FormFile("avatar")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, domain.InvalidField("avatar", "file too large"))
			return
		}
		h.fail(c, domain.MissingFields("avatar"))
		return
	}
	if header.Size > h.maxAvatarBytes {
		h.fail(c, domain.InvalidField("avatar", "file too large"))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.fail(c, domain.InvalidField("avatar", "unreadable upload"))
		return
	}
	defer file.Close()

	user, err := h.users.SetAvatar(c.Request.Context(), caller, c.Param("userId"), file)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": h.userToResponse(c, user)})
}
