package team

import (
	"net/http"
	"strconv"

	"github.com/TomWrigley-7/touchline/internal/middleware"
	"github.com/TomWrigley-7/touchline/pkg/responses"
	"github.com/gin-gonic/gin"
)

// TeamController handles squad and roster HTTP requests.
type TeamController struct {
	repo TeamRepository
}

// NewTeamController creates a new TeamController.
func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

// --- DTOs ---

type CreateTeamRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	AgeGroup string `json:"age_group" binding:"omitempty,max=20"`
	Level    string `json:"level" binding:"omitempty,max=50"`
	Notes    string `json:"notes" binding:"omitempty,max=2000"`
}

type UpdateTeamRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=100"`
	AgeGroup string `json:"age_group" binding:"omitempty,max=20"`
	Level    string `json:"level" binding:"omitempty,max=50"`
	Notes    string `json:"notes" binding:"omitempty,max=2000"`
}

type AddPlayerRequest struct {
	Name             string `json:"name" binding:"required,min=2,max=100"`
	Position         string `json:"position" binding:"omitempty,max=50"`
	ShirtNumber      *int   `json:"shirt_number" binding:"omitempty,gte=1,lte=99"`
	DevelopmentNotes string `json:"development_notes" binding:"omitempty,max=2000"`
}

type UpdatePlayerRequest struct {
	Name             string `json:"name" binding:"omitempty,min=2,max=100"`
	Position         string `json:"position" binding:"omitempty,max=50"`
	ShirtNumber      *int   `json:"shirt_number" binding:"omitempty,gte=1,lte=99"`
	DevelopmentNotes string `json:"development_notes" binding:"omitempty,max=2000"`
}

// ownedTeam loads the team at :team_id and verifies the caller coaches it.
func (tc *TeamController) ownedTeam(c *gin.Context) (*Team, bool) {
	coachID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, false
	}

	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return nil, false
	}

	team, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return nil, false
	}
	if team == nil || team.CoachID != coachID {
		responses.NotFound(c, "Team")
		return nil, false
	}
	return team, true
}

// --- Team Handlers ---

// CreateTeam godoc
// @Summary Create a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team data"
// @Success 201 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	coachID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	team := Team{
		Name:     req.Name,
		AgeGroup: req.AgeGroup,
		Level:    req.Level,
		Notes:    req.Notes,
		CoachID:  coachID,
	}
	if err := tc.repo.CreateTeam(&team); err != nil {
		responses.InternalServerError(c, "Failed to create team")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created", team)
}

// ListTeams godoc
// @Summary List the coach's teams
// @Tags Teams
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Security ApiKeyAuth
// @Router /teams [get]
func (tc *TeamController) ListTeams(c *gin.Context) {
	coachID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
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

	teams, total, err := tc.repo.GetTeamsByCoachID(coachID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list teams")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", teams, total, page, limit)
}

// GetTeam godoc
// @Summary Get a team by ID
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeam(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", team)
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param team body UpdateTeamRequest true "Team update"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != "" {
		team.Name = req.Name
	}
	if req.AgeGroup != "" {
		team.AgeGroup = req.AgeGroup
	}
	if req.Level != "" {
		team.Level = req.Level
	}
	if req.Notes != "" {
		team.Notes = req.Notes
	}

	if err := tc.repo.UpdateTeam(team); err != nil {
		responses.InternalServerError(c, "Failed to update team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated", team)
}

// DeleteTeam godoc
// @Summary Delete a team and its roster
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}

	if err := tc.repo.DeleteTeam(team.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted", nil)
}

// --- Player Handlers ---

// AddPlayer godoc
// @Summary Add a player to the roster
// @Tags Players
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player body AddPlayerRequest true "Player data"
// @Success 201 {object} responses.SuccessResponse{data=Player}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players [post]
func (tc *TeamController) AddPlayer(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}

	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	player := Player{
		TeamID:           team.ID,
		Name:             req.Name,
		Position:         req.Position,
		ShirtNumber:      req.ShirtNumber,
		DevelopmentNotes: req.DevelopmentNotes,
	}
	if err := tc.repo.AddPlayer(&player); err != nil {
		responses.InternalServerError(c, "Failed to add player")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Player added", player)
}

// ListPlayers godoc
// @Summary List a team's roster
// @Tags Players
// @Produce json
// @Param team_id path int true "Team ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} responses.PaginatedResponse{data=[]Player}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players [get]
func (tc *TeamController) ListPlayers(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	players, total, err := tc.repo.GetPlayersByTeamID(team.ID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list players")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", players, total, page, limit)
}

// loadRosterPlayer loads the player at :player_id and checks it belongs to
// the already-verified team.
func (tc *TeamController) loadRosterPlayer(c *gin.Context, team *Team) (*Player, bool) {
	playerID, err := strconv.ParseUint(c.Param("player_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid player ID")
		return nil, false
	}

	player, err := tc.repo.GetPlayerByID(uint(playerID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return nil, false
	}
	if player == nil || player.TeamID != team.ID {
		responses.NotFound(c, "Player")
		return nil, false
	}
	return player, true
}

// UpdatePlayer godoc
// @Summary Update a roster player
// @Tags Players
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Param player body UpdatePlayerRequest true "Player update"
// @Success 200 {object} responses.SuccessResponse{data=Player}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{player_id} [put]
func (tc *TeamController) UpdatePlayer(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}
	player, ok := tc.loadRosterPlayer(c, team)
	if !ok {
		return
	}

	var req UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != "" {
		player.Name = req.Name
	}
	if req.Position != "" {
		player.Position = req.Position
	}
	if req.ShirtNumber != nil {
		player.ShirtNumber = req.ShirtNumber
	}
	if req.DevelopmentNotes != "" {
		player.DevelopmentNotes = req.DevelopmentNotes
	}

	if err := tc.repo.UpdatePlayer(player); err != nil {
		responses.InternalServerError(c, "Failed to update player")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player updated", player)
}

// RemovePlayer godoc
// @Summary Remove a player from the roster
// @Tags Players
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{player_id} [delete]
func (tc *TeamController) RemovePlayer(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}
	player, ok := tc.loadRosterPlayer(c, team)
	if !ok {
		return
	}

	if err := tc.repo.RemovePlayer(player.ID); err != nil {
		responses.InternalServerError(c, "Failed to remove player")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player removed", nil)
}
