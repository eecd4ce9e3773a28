package handlers

import (
	"net/http"
	"time"

	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/services"
	"github.com/engagehq/engage-backend/pkg/filestore"
	"github.com/gin-gonic/gin"
)

var validMaterialTypes = map[models.MaterialType]bool{
	models.MaterialTypeEvaluation: true,
	models.MaterialTypeReading:    true,
	models.MaterialTypeManual:     true,
	models.MaterialTypeSupport:    true,
}

// MaterialHandler handles published materials and file uploads
type MaterialHandler struct {
	materialService *services.MaterialService
	files           filestore.Store
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(materialService *services.MaterialService, files filestore.Store) *MaterialHandler {
	return &MaterialHandler{materialService: materialService, files: files}
}

// List handles GET /materials
func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.materialService.GetAll(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, materials)
}

// Get handles GET /materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	material, err := h.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

// ListAll handles GET /admin/materials
func (h *MaterialHandler) ListAll(c *gin.Context) {
	materials, err := h.materialService.GetAll(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, materials)
}

type materialRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
	FileURL     string `json:"fileUrl"`
	Content     string `json:"content"`
	IsActive    *bool  `json:"isActive"`
}

// Create handles POST /admin/materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	materialType := models.MaterialType(req.Type)
	if !validMaterialTypes[materialType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material type"})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	material := &models.Material{
		Title:       req.Title,
		Description: req.Description,
		Type:        materialType,
		FileURL:     req.FileURL,
		Content:     req.Content,
		IsActive:    active,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := h.materialService.Create(c.Request.Context(), material); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

// Update handles PUT /admin/materials/:id
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	materialType := models.MaterialType(req.Type)
	if !validMaterialTypes[materialType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material type"})
		return
	}

	material, err := h.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	material.Title = req.Title
	material.Description = req.Description
	material.Type = materialType
	material.FileURL = req.FileURL
	material.Content = req.Content
	if req.IsActive != nil {
		material.IsActive = *req.IsActive
	}
	material.UpdatedAt = time.Now()

	if err := h.materialService.Update(c.Request.Context(), material); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

// Delete handles DELETE /admin/materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.materialService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "material deleted"})
}

// Upload handles POST /admin/materials/upload. The returned URL can be
// used as the fileUrl of a material.
func (h *MaterialHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read file"})
		return
	}
	defer file.Close()

	url, err := h.files.Save(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"fileUrl": url})
}
