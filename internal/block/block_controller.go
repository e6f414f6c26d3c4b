package block

import (
	"net/http"
	"strconv"

	"github.com/TomWrigley-7/touchline/internal/middleware"
	"github.com/TomWrigley-7/touchline/internal/models"
	"github.com/TomWrigley-7/touchline/internal/user"
	"github.com/TomWrigley-7/touchline/pkg/responses"
	"github.com/gin-gonic/gin"
)

// BlockController handles catalog HTTP requests.
type BlockController struct {
	repo     BlockRepository
	userRepo user.UserRepository
}

// NewBlockController creates a new block controller.
func NewBlockController(repo BlockRepository, userRepo user.UserRepository) *BlockController {
	return &BlockController{repo: repo, userRepo: userRepo}
}

func (bc *BlockController) currentCoach(c *gin.Context) (*user.User, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, false
	}
	u, err := bc.userRepo.GetUserByID(userID)
	if err != nil || u == nil {
		responses.Unauthorized(c, "Account not found")
		return nil, false
	}
	return u, true
}

// --- DTOs ---

type CreateBlockRequest struct {
	Title          string             `json:"title" binding:"required,min=2,max=150"`
	Description    string             `json:"description" binding:"max=2000"`
	CoachingPoints models.StringSlice `json:"coaching_points" binding:"max=20,dive,max=500"`
	Duration       *int               `json:"duration" binding:"omitempty,gte=1,lte=180"`
	BallRollingPct *int               `json:"ball_rolling_pct" binding:"omitempty,gte=0,lte=100"`
	Diagram        models.JSONMap     `json:"diagram"`
	Visibility     string             `json:"visibility" binding:"omitempty,oneof=private club public"`
	Outcomes       []OutcomeInput     `json:"outcomes" binding:"max=6,dive"`
}

// --- Handlers ---

// CreateBlock godoc
// @Summary Create a catalog block
// @Tags Blocks
// @Accept json
// @Produce json
// @Param block body CreateBlockRequest true "Block data"
// @Success 201 {object} responses.SuccessResponse{data=BlockDefinition}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /blocks [post]
func (bc *BlockController) CreateBlock(c *gin.Context) {
	coach, ok := bc.currentCoach(c)
	if !ok {
		return
	}

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	outcomes, err := BuildOutcomes(req.Outcomes)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = VisibilityPrivate
	}
	if visibility == VisibilityClub && coach.ClubID == nil {
		responses.BadRequest(c, "Cannot create a club-visible block without a club")
		return
	}

	b := &BlockDefinition{
		Title:          req.Title,
		Description:    req.Description,
		CoachingPoints: req.CoachingPoints,
		Duration:       req.Duration,
		BallRollingPct: req.BallRollingPct,
		Diagram:        req.Diagram,
		CreatorID:      coach.ID,
		ClubID:         coach.ClubID,
		Visibility:     visibility,
		Outcomes:       outcomes,
	}
	if err := bc.repo.CreateBlock(b); err != nil {
		responses.InternalServerError(c, "Failed to create block")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Block created", b)
}

// GetBlock godoc
// @Summary Get a catalog block by ID
// @Tags Blocks
// @Produce json
// @Param block_id path int true "Block ID"
// @Success 200 {object} responses.SuccessResponse{data=BlockDefinition}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /blocks/{block_id} [get]
func (bc *BlockController) GetBlock(c *gin.Context) {
	coach, ok := bc.currentCoach(c)
	if !ok {
		return
	}

	blockID, err := strconv.ParseUint(c.Param("block_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid block ID")
		return
	}

	b, err := bc.repo.GetBlockByID(uint(blockID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch block")
		return
	}
	if b == nil || !b.VisibleTo(coach.ID, coach.ClubID) {
		responses.NotFound(c, "Block")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", b)
}

// ListBlocks godoc
// @Summary List catalog blocks visible to the coach
// @Tags Blocks
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param title query string false "Title filter"
// @Param attribute_key query string false "Outcome attribute filter"
// @Success 200 {object} responses.PaginatedResponse{data=[]BlockDefinition}
// @Security ApiKeyAuth
// @Router /blocks [get]
func (bc *BlockController) ListBlocks(c *gin.Context) {
	coach, ok := bc.currentCoach(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filters := map[string]interface{}{}
	if title := c.Query("title"); title != "" {
		filters["title"] = title
	}
	if key := c.Query("attribute_key"); key != "" {
		filters["attribute_key"] = key
	}

	blocks, total, err := bc.repo.ListBlocks(coach.ID, coach.ClubID, page, limit, filters)
	if err != nil {
		responses.InternalServerError(c, "Failed to list blocks")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", blocks, total, page, limit)
}

// UpdateBlock godoc
// @Summary Update an owned catalog block
// @Description Direct catalog edits are allowed only for the creator. Shared
// @Description blocks are edited through a session assignment, which clones
// @Description them instead (copy-on-write).
// @Tags Blocks
// @Accept json
// @Produce json
// @Param block_id path int true "Block ID"
// @Param patch body Patch true "Fields to change"
// @Success 200 {object} responses.SuccessResponse{data=BlockDefinition}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /blocks/{block_id} [put]
func (bc *BlockController) UpdateBlock(c *gin.Context) {
	coach, ok := bc.currentCoach(c)
	if !ok {
		return
	}

	blockID, err := strconv.ParseUint(c.Param("block_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid block ID")
		return
	}

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	b, err := bc.repo.GetBlockByID(uint(blockID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch block")
		return
	}
	if b == nil {
		responses.NotFound(c, "Block")
		return
	}
	if b.CreatorID != coach.ID {
		responses.Forbidden(c, "Only the creator can edit a catalog block directly")
		return
	}

	if err := patch.Apply(b); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if err := bc.repo.UpdateBlock(b); err != nil {
		responses.InternalServerError(c, "Failed to update block")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Block updated", b)
}

// DeleteBlock godoc
// @Summary Delete an owned catalog block
// @Tags Blocks
// @Produce json
// @Param block_id path int true "Block ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /blocks/{block_id} [delete]
func (bc *BlockController) DeleteBlock(c *gin.Context) {
	coach, ok := bc.currentCoach(c)
	if !ok {
		return
	}

	blockID, err := strconv.ParseUint(c.Param("block_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid block ID")
		return
	}

	b, err := bc.repo.GetBlockByID(uint(blockID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch block")
		return
	}
	if b == nil {
		responses.NotFound(c, "Block")
		return
	}
	if b.CreatorID != coach.ID {
		responses.Forbidden(c, "Only the creator can delete a catalog block")
		return
	}

	if err := bc.repo.DeleteBlock(b.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete block")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Block deleted", nil)
}
