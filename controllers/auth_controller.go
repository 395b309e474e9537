package controllers

import (
	"swiftaid/models"
	"swiftaid/services"
	"swiftaid/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login handles admin authentication
// @Summary Admin login
// @Description Check the admin credential and return a session token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.APIResponse
// @Router /admin/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.NewBadRequestError("Invalid request body"))
		return
	}

	response, err := ac.authService.Login(req)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, response)
}
