package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/trygraphite/platter-sub000/pkg/resp"
	"github.com/trygraphite/platter-sub000/services"
	"github.com/trygraphite/platter-sub000/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, staff, err := ac.Auth.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"token": token, "staff": staff})
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	staff, err := ac.Auth.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, staff)
}

// POST /staff (admin only)
func (ac *AuthController) CreateStaff(c *gin.Context) {
	var req services.CreateStaffReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	staff, err := ac.Auth.CreateStaff(&req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, staff)
}
