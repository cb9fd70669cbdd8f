package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/fintera-homes/internal/services"
)

type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type CreateUserRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	FullName       string `json:"full_name"`
	FullNamePascal string `json:"FullName"` // Support PascalCase from some frontends/tools
	Role           string `json:"role"`
}

// fullName returns full_name, falling back to the PascalCase alias
func (r CreateUserRequest) fullName() string {
	if r.FullName != "" {
		return r.FullName
	}
	return r.FullNamePascal
}

// @Summary Create Staff User
// @Description Creates an agent or administrator account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User Data"
// @Success 201 {object} models.UserResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := BindNestedOrFlat(c, "user", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := req.fullName()
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre completo es requerido"})
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), req.Email, req.Password, name, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user.ToResponse()})
}
