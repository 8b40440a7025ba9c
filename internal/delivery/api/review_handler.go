package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

type ReviewHandler struct {
	reviewUC *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUC *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUC: reviewUC}
}

func (h *ReviewHandler) Add(c echo.Context) error {
	req := struct {
		ProductID string `json:"productId"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	review, err := h.reviewUC.AddReview(c.Request().Context(), currentUser(c), req.ProductID, req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ByProduct(c echo.Context) error {
	reviews, err := h.reviewUC.ReviewsByProduct(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.reviewUC.DeleteReview(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "review deleted"})
}
