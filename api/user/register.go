// Package user contains the account endpoints
package user

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/repository"
	"bitwise74/notes-api/internal/service"
	"bitwise74/notes-api/pkg/security"
	"bitwise74/notes-api/pkg/validators"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if !request.BindJSON(c, &data) {
		return
	}

	data.Email = strings.TrimSpace(data.Email)

	for _, err := range []error{
		validators.UsernameValidator(data.Username),
		validators.EmailValidator(data.Email),
		validators.PasswordValidator(data.Password),
	} {
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	status, err := d.Users.Status(c.Request.Context(), data.Email)
	if err != nil {
		request.InternalError(c, "Failed to check if user is registered", err)
		return
	}

	switch status {
	case repository.StatusExisting:
		c.JSON(http.StatusConflict, gin.H{
			"error":     "User with this email already exists",
			"requestID": requestID,
		})
		return
	case repository.StatusPending:
		c.JSON(http.StatusConflict, gin.H{
			"error":     "This email is unverified, click email link to verify",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.Hash(data.Password)
	if err != nil {
		request.InternalError(c, "Failed to hash password", err)
		return
	}

	token, err := security.NewVerificationToken()
	if err != nil {
		request.InternalError(c, "Failed to generate verification token", err)
		return
	}

	link := service.VerificationLink(d.Config.Host.FrontendURL, token, data.Email)

	// Try to send mail now
	if err := d.Mailer.SendVerification(c.Request.Context(), data.Email, data.Username, link); err != nil {
		request.InternalError(c, "Failed to send verification email", err)
		return
	}

	user, err := d.Users.Create(c.Request.Context(), data.Username, data.Email, hash, token)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "User with this email already exists",
				"requestID": requestID,
			})
			return
		}

		request.InternalError(c, "Failed to create user", err)
		return
	}

	zap.L().Info("Unverified user registered", zap.Uint("userID", user.ID))

	c.JSON(http.StatusCreated, user)
}
