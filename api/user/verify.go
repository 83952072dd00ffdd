package user

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/repository"
	"bitwise74/notes-api/pkg/validators"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type verifyBody struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

func UserVerify(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data verifyBody
	if !request.BindJSON(c, &data) {
		return
	}

	for _, err := range []error{
		validators.EmailValidator(data.Email),
		validators.TokenValidator(data.Token),
	} {
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	user, err := d.Users.FindByEmail(c.Request.Context(), data.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		request.InternalError(c, "Failed to find user", err)
		return
	}

	if user == nil || user.Verified || user.VerificationToken == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "User doesn't exist or is already verified",
			"requestID": requestID,
		})
		return
	}

	if subtle.ConstantTimeCompare([]byte(*user.VerificationToken), []byte(data.Token)) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid token",
			"requestID": requestID,
		})
		return
	}

	verified, err := d.Users.MarkVerified(c.Request.Context(), data.Email)
	if err != nil {
		request.InternalError(c, "Failed to mark user as verified", err)
		return
	}

	zap.L().Info("User email verified", zap.Uint("userID", verified.ID))

	c.JSON(http.StatusOK, verified)
}
