package controllers

import (
	"swiftaid/services"
	"swiftaid/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService    *services.UserService
	contactService *services.ContactService
}

func NewUserController(userService *services.UserService, contactService *services.ContactService) *UserController {
	return &UserController{
		userService:    userService,
		contactService: contactService,
	}
}

// ListUsers returns every user with profile, contacts and incident counters
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.UserResponse
// @Router /admin/users [get]
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.userService.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, users)
}

// GetUser returns one user with its recent incidents
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.UserDetailResponse
// @Failure 404 {object} models.APIResponse
// @Router /admin/users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, user)
}

// DeleteUser removes a user with its profile, contacts and incidents
// @Summary Delete user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /admin/users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	if err := uc.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	utils.MessageResponse(c, "User and all related data deleted successfully")
}

// ListContacts returns every emergency contact as stored
func (uc *UserController) ListContacts(c *gin.Context) {
	contacts, err := uc.contactService.ListContacts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, contacts)
}
