package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/pkg/upload"
	"github.com/wambui/florax/internal/server/http/dto"
	"github.com/wambui/florax/internal/usecase"
)

// FlowerHandler manages catalog endpoints.
type FlowerHandler struct {
	facade  CatalogFacade
	uploads *upload.Store
}

// NewFlowerHandler constructs FlowerHandler.
func NewFlowerHandler(facade CatalogFacade, uploads *upload.Store) *FlowerHandler {
	return &FlowerHandler{facade: facade, uploads: uploads}
}

// flowerForm accepts both JSON and multipart submissions.
type flowerForm struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price"`
	ImageURL    string  `json:"image_url" form:"image_url"`
	StockStatus string  `json:"stock_status" form:"stock_status"`
}

// bindFlowerForm parses the request and stores an uploaded image when one
// is attached. It returns the input plus the saved image path, if any.
func (h *FlowerHandler) bindFlowerForm(c *gin.Context) (usecase.FlowerInput, string, bool) {
	var form flowerForm
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed form data"})
			return usecase.FlowerInput{}, "", false
		}
	} else if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return usecase.FlowerInput{}, "", false
	}

	input := usecase.FlowerInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		ImageURL:    form.ImageURL,
		StockStatus: form.StockStatus,
	}

	var saved string
	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image"})
			return usecase.FlowerInput{}, "", false
		}
		defer src.Close()

		saved, err = h.uploads.Save(file.Filename, src)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return usecase.FlowerInput{}, "", false
		}
		input.ImageURL = saved
	}

	return input, saved, true
}

// Create handles POST /api/flowers.
func (h *FlowerHandler) Create(c *gin.Context) {
	input, saved, ok := h.bindFlowerForm(c)
	if !ok {
		return
	}

	flower, err := h.facade.CreateFlower(c.Request.Context(), CurrentUserID(c), input)
	if err != nil {
		if saved != "" {
			_ = h.uploads.Remove(saved)
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toFlowerResponse(flower))
}

// List handles GET /api/flowers.
func (h *FlowerHandler) List(c *gin.Context) {
	flowers, err := h.facade.Flowers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlowerResponses(flowers))
}

// Get handles GET /api/flowers/:id.
func (h *FlowerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	flower, err := h.facade.Flower(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlowerResponse(flower))
}

// ListByFlorist handles GET /api/flowers/florist/:id.
func (h *FlowerHandler) ListByFlorist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	flowers, err := h.facade.FloristFlowers(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlowerResponses(flowers))
}

// Update handles PUT /api/flowers/:id.
func (h *FlowerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	input, saved, ok := h.bindFlowerForm(c)
	if !ok {
		return
	}

	var previousImage string
	if saved != "" {
		if existing, err := h.facade.Flower(c.Request.Context(), id); err == nil {
			previousImage = existing.ImageURL
		}
	}

	flower, err := h.facade.UpdateFlower(c.Request.Context(), CurrentUserID(c), id, input)
	if err != nil {
		if saved != "" {
			_ = h.uploads.Remove(saved)
		}
		writeError(c, err)
		return
	}

	if saved != "" && previousImage != "" && previousImage != saved {
		_ = h.uploads.Remove(previousImage)
	}

	c.JSON(http.StatusOK, toFlowerResponse(flower))
}

// Delete handles DELETE /api/flowers/:id.
func (h *FlowerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	removed, err := h.facade.DeleteFlower(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if removed.ImageURL != "" {
		_ = h.uploads.Remove(removed.ImageURL)
	}

	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

func toFlowerResponse(flower *model.Flower) dto.FlowerResponse {
	return dto.FlowerResponse{
		ID:          flower.ID,
		FloristID:   flower.FloristID,
		Name:        flower.Name,
		Description: flower.Description,
		Price:       flower.Price,
		ImageURL:    flower.ImageURL,
		StockStatus: string(flower.StockStatus),
		CreatedAt:   flower.CreatedAt,
		UpdatedAt:   flower.UpdatedAt,
	}
}

func toFlowerResponses(flowers []model.Flower) []dto.FlowerResponse {
	response := make([]dto.FlowerResponse, 0, len(flowers))
	for i := range flowers {
		response = append(response, toFlowerResponse(&flowers[i]))
	}
	return response
}
