package attribute

import (
	"net/http"
	"strconv"

	"github.com/TomWrigley-7/touchline/internal/middleware"
	"github.com/TomWrigley-7/touchline/pkg/responses"
	"github.com/gin-gonic/gin"
)

// AttributeController handles API requests for the attribute taxonomy and
// per-player development targets.
type AttributeController struct {
	repo AttributeRepository
}

// NewAttributeController creates a new AttributeController.
func NewAttributeController(repo AttributeRepository) *AttributeController {
	return &AttributeController{repo: repo}
}

// --- DTOs ---

type CreateAttributeRequest struct {
	Key         string `json:"key" binding:"required,min=2,max=60"`
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Category    string `json:"category" binding:"required,oneof=technical tactical physical mental"`
}

type UpdateAttributeRequest struct {
	Name        string `json:"name" binding:"omitempty,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Category    string `json:"category" binding:"omitempty,oneof=technical tactical physical mental"`
}

type PlayerTargetRequest struct {
	AttributeKey string `json:"attribute_key" binding:"required"`
	Priority     int    `json:"priority" binding:"omitempty,gte=1,lte=5"`
}

// --- Attribute Handlers ---

// CreateAttribute godoc
// @Summary Create a development attribute
// @Tags Attributes
// @Accept json
// @Produce json
// @Param attribute body CreateAttributeRequest true "Attribute data"
// @Success 201 {object} responses.SuccessResponse{data=Attribute}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /attributes [post]
func (ac *AttributeController) CreateAttribute(c *gin.Context) {
	var req CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	existing, _ := ac.repo.FindAttributeByKey(req.Key)
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "Attribute with this key already exists")
		return
	}

	attribute := Attribute{
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := ac.repo.CreateAttribute(&attribute); err != nil {
		responses.InternalServerError(c, "Failed to create attribute")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Attribute created", attribute)
}

// GetAllAttributes godoc
// @Summary List development attributes
// @Tags Attributes
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param search query string false "Search term for name or description"
// @Param category query string false "Category filter"
// @Success 200 {object} responses.PaginatedResponse{data=[]Attribute}
// @Security ApiKeyAuth
// @Router /attributes [get]
func (ac *AttributeController) GetAllAttributes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	searchTerm := c.Query("search")
	category := c.Query("category")

	if category != "" && !ValidCategory(category) {
		responses.BadRequest(c, "Unknown attribute category")
		return
	}

	attributes, total, err := ac.repo.GetAllAttributes(page, pageSize, searchTerm, category)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve attributes")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", attributes, total, page, pageSize)
}

// GetAttributeByID godoc
// @Summary Get an attribute by ID
// @Tags Attributes
// @Produce json
// @Param attribute_id path int true "Attribute ID"
// @Success 200 {object} responses.SuccessResponse{data=Attribute}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /attributes/{attribute_id} [get]
func (ac *AttributeController) GetAttributeByID(c *gin.Context) {
	attributeID, err := strconv.ParseUint(c.Param("attribute_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid attribute ID")
		return
	}

	attribute, err := ac.repo.GetAttributeByID(uint(attributeID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve attribute")
		return
	}
	if attribute == nil {
		responses.NotFound(c, "Attribute")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", attribute)
}

// UpdateAttribute godoc
// @Summary Update an attribute
// @Tags Attributes
// @Accept json
// @Produce json
// @Param attribute_id path int true "Attribute ID"
// @Param attribute body UpdateAttributeRequest true "Attribute update"
// @Success 200 {object} responses.SuccessResponse{data=Attribute}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /attributes/{attribute_id} [put]
func (ac *AttributeController) UpdateAttribute(c *gin.Context) {
	attributeID, err := strconv.ParseUint(c.Param("attribute_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid attribute ID")
		return
	}

	var req UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	attribute, err := ac.repo.GetAttributeByID(uint(attributeID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve attribute")
		return
	}
	if attribute == nil {
		responses.NotFound(c, "Attribute")
		return
	}

	if req.Name != "" {
		attribute.Name = req.Name
	}
	if req.Description != "" {
		attribute.Description = req.Description
	}
	if req.Category != "" {
		attribute.Category = req.Category
	}

	if err := ac.repo.UpdateAttribute(attribute); err != nil {
		responses.InternalServerError(c, "Failed to update attribute")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Attribute updated", attribute)
}

// DeleteAttribute godoc
// @Summary Delete an attribute
// @Tags Attributes
// @Produce json
// @Param attribute_id path int true "Attribute ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /attributes/{attribute_id} [delete]
func (ac *AttributeController) DeleteAttribute(c *gin.Context) {
	attributeID, err := strconv.ParseUint(c.Param("attribute_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid attribute ID")
		return
	}

	attribute, err := ac.repo.GetAttributeByID(uint(attributeID))
	if err != nil || attribute == nil {
		responses.NotFound(c, "Attribute")
		return
	}

	if err := ac.repo.DeleteAttribute(uint(attributeID)); err != nil {
		responses.InternalServerError(c, "Failed to delete attribute")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Attribute deleted", nil)
}

// --- PlayerTarget Handlers ---

func (ac *AttributeController) ownedPlayer(c *gin.Context) (uint, bool) {
	coachID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return 0, false
	}

	playerID, err := strconv.ParseUint(c.Param("player_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid player ID")
		return 0, false
	}

	owned, err := ac.repo.PlayerOwnedBy(uint(playerID), coachID)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify player")
		return 0, false
	}
	if !owned {
		responses.NotFound(c, "Player")
		return 0, false
	}
	return uint(playerID), true
}

// SetPlayerTarget godoc
// @Summary Set a development target for a player
// @Description Upserts the target; setting an attribute again refreshes its priority.
// @Tags PlayerTargets
// @Accept json
// @Produce json
// @Param player_id path int true "Player ID"
// @Param target body PlayerTargetRequest true "Target"
// @Success 200 {object} responses.SuccessResponse{data=PlayerTarget}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /players/{player_id}/targets [post]
func (ac *AttributeController) SetPlayerTarget(c *gin.Context) {
	playerID, ok := ac.ownedPlayer(c)
	if !ok {
		return
	}

	var req PlayerTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	attribute, err := ac.repo.FindAttributeByKey(req.AttributeKey)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify attribute")
		return
	}
	if attribute == nil {
		responses.NotFound(c, "Attribute")
		return
	}

	target := PlayerTarget{
		PlayerID:     playerID,
		AttributeKey: req.AttributeKey,
		Priority:     req.Priority,
	}
	if target.Priority == 0 {
		target.Priority = 1
	}

	if err := ac.repo.SetPlayerTarget(&target); err != nil {
		responses.InternalServerError(c, "Failed to save player target")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player target saved", target)
}

// GetPlayerTargets godoc
// @Summary List a player's development targets
// @Tags PlayerTargets
// @Produce json
// @Param player_id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse{data=[]PlayerTarget}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /players/{player_id}/targets [get]
func (ac *AttributeController) GetPlayerTargets(c *gin.Context) {
	playerID, ok := ac.ownedPlayer(c)
	if !ok {
		return
	}

	targets, err := ac.repo.GetPlayerTargets(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve player targets")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", targets)
}

// RemovePlayerTarget godoc
// @Summary Remove a development target from a player
// @Tags PlayerTargets
// @Produce json
// @Param player_id path int true "Player ID"
// @Param attribute_key path string true "Attribute key"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /players/{player_id}/targets/{attribute_key} [delete]
func (ac *AttributeController) RemovePlayerTarget(c *gin.Context) {
	playerID, ok := ac.ownedPlayer(c)
	if !ok {
		return
	}

	attributeKey := c.Param("attribute_key")
	if err := ac.repo.RemovePlayerTarget(playerID, attributeKey); err != nil {
		responses.NotFound(c, "Player target")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player target removed", nil)
}
