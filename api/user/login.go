package user

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/repository"
	"bitwise74/notes-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if !request.BindJSON(c, &data) {
		return
	}

	for _, err := range []error{
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

	invalid := func() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid email or password",
			"requestID": requestID,
		})
	}

	user, err := d.Users.FindByEmail(c.Request.Context(), data.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			invalid()
			return
		}

		request.InternalError(c, "Failed to find user", err)
		return
	}

	ok, err := d.Argon.Verify(data.Password, user.Password)
	if err != nil {
		request.InternalError(c, "Failed to verify password", err)
		return
	}

	// Unverified accounts get the same answer as a wrong password
	if !ok || !user.Verified {
		invalid()
		return
	}

	token, err := d.Tokens.Issue(user.ID)
	if err != nil {
		request.InternalError(c, "Failed to generate JWT auth token", err)
		return
	}

	secure := c.Request.TLS != nil
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", token, int(d.Config.JWT.TTL.Seconds()), "/", "", secure, true)

	c.JSON(http.StatusOK, gin.H{"token": token})
}
