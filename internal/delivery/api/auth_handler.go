package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

type AuthHandler struct {
	authUC *usecase.AuthUseCase
}

func NewAuthHandler(authUC *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Register starts signup: creates an unverified account and mails an OTP.
func (h *AuthHandler) Register(c echo.Context) error {
	req := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	if err := h.authUC.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Phone); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP sent to your email"})
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	req := struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	token, user, err := h.authUC.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

func (h *AuthHandler) Login(c echo.Context) error {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	token, user, err := h.authUC.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	req := struct {
		IDToken string `json:"idToken"`
	}{}
	if err := c.Bind(&req); err != nil || req.IDToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "idToken is required"})
	}

	token, user, err := h.authUC.GoogleLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	req := struct {
		Email string `json:"email"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	if err := h.authUC.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP sent to your email"})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	req := struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	if err := h.authUC.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	user := currentUser(c)
	profile, err := h.authUC.Profile(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	req := struct {
		Name   string `json:"name"`
		Phone  string `json:"phone"`
		Avatar string `json:"avatar"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	user := currentUser(c)
	updated, err := h.authUC.UpdateProfile(c.Request().Context(), user.UserID, req.Name, req.Phone, req.Avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// AdminSendOTP mails a login code to the configured admin address only.
func (h *AuthHandler) AdminSendOTP(c echo.Context) error {
	req := struct {
		Email string `json:"email"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	if err := h.authUC.AdminSendOTP(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP sent to admin email"})
}

func (h *AuthHandler) AdminVerifyOTP(c echo.Context) error {
	req := struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	token, user, err := h.authUC.AdminVerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authUC.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) DeleteUser(c echo.Context) error {
	if err := h.authUC.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}

func (h *AuthHandler) ToggleBlock(c echo.Context) error {
	user, err := h.authUC.ToggleBlock(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
