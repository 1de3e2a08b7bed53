package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PIEROLS15/TaskMasterBackend/internal/services"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=255,person_name"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("invalid register request")
		if msg, ok := firstValidationMessage(err, registerMessages); ok {
			abortError(c, http.StatusUnprocessableEntity, msg)
			return
		}
		abortError(c, http.StatusUnprocessableEntity, errInvalidBody)
		return
	}

	_, err = h.auth.Register(c, services.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		if errors.Is(err, services.ErrEmailTaken) {
			abortError(c, http.StatusUnprocessableEntity, errEmailTaken)
			return
		}
		abortError(c, http.StatusInternalServerError, errRegisterFailed)
		return
	}

	// Registration deliberately issues no token; the
	// client logs in with the same credentials next.
	c.JSON(http.StatusCreated, gin.H{"message": msgRegistered})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("invalid login request")
		if msg, ok := firstValidationMessage(err, loginMessages); ok {
			abortError(c, http.StatusUnprocessableEntity, msg)
			return
		}
		abortError(c, http.StatusUnprocessableEntity, errInvalidBody)
		return
	}

	token, err := h.auth.Login(c, services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to login")
		if errors.Is(err, services.ErrInvalidCredentials) {
			abortMessage(c, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		abortError(c, http.StatusInternalServerError, errLoginFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *handlerImpl) HandleLogout(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abortMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	err := h.auth.Logout(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to logout")
		abortError(c, http.StatusInternalServerError, errLogoutFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgLoggedOut})
}
