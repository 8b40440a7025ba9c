package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

type OrderHandler struct {
	orderUC *usecase.OrderUseCase
}

func NewOrderHandler(orderUC *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

type placeOrderRequest struct {
	Items           []entities.OrderItem     `json:"orderItems"`
	ShippingAddress entities.ShippingAddress `json:"shippingAddress"`
	ItemsPrice      float64                  `json:"itemsPrice"`
	TaxPrice        float64                  `json:"taxPrice"`
	ShippingPrice   float64                  `json:"shippingPrice"`
	TotalPrice      float64                  `json:"totalPrice"`
	PaymentMethod   string                   `json:"paymentMethod"`
}

func (r placeOrderRequest) toInput() usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		Items:           r.Items,
		ShippingAddress: r.ShippingAddress,
		ItemsPrice:      r.ItemsPrice,
		TaxPrice:        r.TaxPrice,
		ShippingPrice:   r.ShippingPrice,
		TotalPrice:      r.TotalPrice,
		PaymentMethod:   entities.PaymentMethod(r.PaymentMethod),
	}
}

// Create places a COD order. ONLINE orders go through the payments route so
// the client always gets a payment intent back.
func (h *OrderHandler) Create(c echo.Context) error {
	req := placeOrderRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}
	if entities.PaymentMethod(req.PaymentMethod) == entities.PaymentOnline {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "use the payments endpoint for online orders"})
	}

	result, err := h.orderUC.PlaceOrder(c.Request().Context(), currentUser(c), req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, result.Order)
}

func (h *OrderHandler) Mine(c echo.Context) error {
	orders, err := h.orderUC.MyOrders(c.Request().Context(), currentUser(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orderUC.GetOrder(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, revenue, err := h.orderUC.AllOrders(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders, "totalRevenue": revenue})
}

// UpdateStatus applies an admin transition. Shipping needs a delivery partner
// and tracking id; cancellation takes an optional reason.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	req := struct {
		Status             string `json:"status"`
		DeliveryPartner    string `json:"deliveryPartner"`
		TrackingID         string `json:"trackingId"`
		CancellationReason string `json:"cancellationReason"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	order, err := h.orderUC.TransitionStatus(
		c.Request().Context(),
		c.Param("id"),
		entities.Status(req.Status),
		usecase.TransitionExtra{
			DeliveryPartner:    req.DeliveryPartner,
			TrackingID:         req.TrackingID,
			CancellationReason: req.CancellationReason,
		},
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
