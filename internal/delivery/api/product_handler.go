package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

type ProductHandler struct {
	catalogUC *usecase.CatalogUseCase
}

func NewProductHandler(catalogUC *usecase.CatalogUseCase) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC}
}

func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalogUC.ListProducts(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.catalogUC.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	product := entities.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	created, err := h.catalogUC.CreateProduct(c.Request().Context(), &product)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) Update(c echo.Context) error {
	product := entities.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}
	product.ProductID = c.Param("id")

	updated, err := h.catalogUC.UpdateProduct(c.Request().Context(), &product)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.catalogUC.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}

// UploadImages accepts multipart form files under "images" and returns the
// stored URLs in upload order.
func (h *ProductHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "multipart form required"})
	}
	files := form.File["images"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "no images provided"})
	}

	uploads := make([]usecase.MediaUpload, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "failed to read upload"})
		}
		defer src.Close()
		uploads = append(uploads, usecase.MediaUpload{Name: file.Filename, Reader: src})
	}

	urls, err := h.catalogUC.UploadImages(c.Request().Context(), uploads)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"urls": urls})
}

func (h *ProductHandler) UploadVideo(c echo.Context) error {
	file, err := c.FormFile("video")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "no video provided"})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "failed to read upload"})
	}
	defer src.Close()

	url, err := h.catalogUC.UploadVideo(c.Request().Context(), usecase.MediaUpload{Name: file.Filename, Reader: src})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
