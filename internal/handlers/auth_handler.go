package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamrosewa/backend/internal/models"
	"github.com/hamrosewa/backend/internal/services"
)

func Register(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		result, err := us.Register(c.Request.Context(), &in)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(result, "account created"))
	}
}

func Login(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Identifier string `json:"identifier"`
			Email      string `json:"email"`
			Phone      string `json:"phone"`
			Password   string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}
		identifier := req.Identifier
		if identifier == "" {
			identifier = req.Email
		}
		if identifier == "" {
			identifier = req.Phone
		}

		result, err := us.Login(c.Request.Context(), identifier, req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(result, "logged in"))
	}
}

func GoogleLogin(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"id_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("id_token is required"))
			return
		}

		result, err := us.GoogleLogin(c.Request.Context(), req.IDToken)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(result, "logged in"))
	}
}

func RequestPasswordReset(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ContactType  string `json:"contact_type" binding:"required"`
			ContactValue string `json:"contact_value" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		if err := us.RequestPasswordReset(c.Request.Context(), req.ContactType, req.ContactValue); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "if the account exists, a reset code has been sent"))
	}
}

func VerifyResetCode(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ContactType  string `json:"contact_type" binding:"required"`
			ContactValue string `json:"contact_value" binding:"required"`
			Code         string `json:"code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		token, err := us.VerifyResetCode(c.Request.Context(), req.ContactType, req.ContactValue, req.Code)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"reset_token": token}, "code verified"))
	}
}

func ResetPassword(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ResetToken  string `json:"reset_token" binding:"required"`
			NewPassword string `json:"new_password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		if err := us.ResetPassword(c.Request.Context(), req.ResetToken, req.NewPassword); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "password updated"))
	}
}
