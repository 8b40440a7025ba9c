package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

// respondError maps domain and usecase errors onto HTTP statuses with a
// {"message": ...} body. Unknown errors become opaque 500s.
func respondError(c echo.Context, err error) error {
	var oos *usecase.OutOfStockError
	if errors.As(err, &oos) {
		return c.JSON(http.StatusConflict, echo.Map{
			"message":   oos.Error(),
			"product":   oos.ProductID,
			"requested": oos.Requested,
			"available": oos.Available,
		})
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, usecase.ErrEmptyItems),
		errors.Is(err, usecase.ErrInvalidItem),
		errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidUserID),
		errors.Is(err, usecase.ErrInvalidPayment),
		errors.Is(err, usecase.ErrMissingTotal),
		errors.Is(err, usecase.ErrMissingGatewayRefs),
		errors.Is(err, usecase.ErrMissingTrackingInfo),
		errors.Is(err, usecase.ErrInvalidRating),
		errors.Is(err, usecase.ErrInvalidProduct),
		errors.Is(err, usecase.ErrInvalidGame):
		status, message = http.StatusBadRequest, err.Error()

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidOTP),
		errors.Is(err, usecase.ErrOTPExpired),
		errors.Is(err, usecase.ErrInvalidSignature):
		status, message = http.StatusUnauthorized, err.Error()

	case errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, usecase.ErrNotVerified),
		errors.Is(err, usecase.ErrUserBlocked):
		status, message = http.StatusForbidden, err.Error()

	case errors.Is(err, usecase.ErrOTPThrottled):
		status, message = http.StatusTooManyRequests, err.Error()

	case errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, repositories.ErrStatusConflict),
		errors.Is(err, repositories.ErrGatewayOrderBound),
		errors.Is(err, repositories.ErrInsufficientStock),
		errors.Is(err, repositories.ErrUserAlreadyExists),
		errors.Is(err, repositories.ErrOrderAlreadyExists):
		status, message = http.StatusConflict, err.Error()

	case errors.Is(err, repositories.ErrOrderNotFound),
		errors.Is(err, repositories.ErrProductNotFound),
		errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrReviewNotFound),
		errors.Is(err, repositories.ErrScoreNotFound):
		status, message = http.StatusNotFound, err.Error()
	}

	return c.JSON(status, echo.Map{"message": message})
}
