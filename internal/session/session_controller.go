package session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TomWrigley-7/touchline/internal/block"
	"github.com/TomWrigley-7/touchline/internal/middleware"
	"github.com/TomWrigley-7/touchline/internal/planner"
	"github.com/TomWrigley-7/touchline/internal/user"
	"github.com/TomWrigley-7/touchline/pkg/responses"
	"github.com/gin-gonic/gin"
)

// SessionController handles session-planning HTTP requests. Each mutating
// handler loads a fresh editor for the target session, applies one engine
// mutation, and reports the re-derived group view.
type SessionController struct {
	repo      SessionRepository
	blockRepo block.BlockRepository
	userRepo  user.UserRepository
}

// NewSessionController creates a new session controller.
func NewSessionController(repo SessionRepository, blockRepo block.BlockRepository, userRepo user.UserRepository) *SessionController {
	return &SessionController{repo: repo, blockRepo: blockRepo, userRepo: userRepo}
}

// ownedSession loads the session and verifies it belongs to the caller.
func (sc *SessionController) ownedSession(c *gin.Context) (*Session, uint, bool) {
	coachID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, 0, false
	}

	sessionID, err := strconv.ParseUint(c.Param("session_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid session ID")
		return nil, 0, false
	}

	s, err := sc.repo.GetSessionByID(uint(sessionID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch session")
		return nil, 0, false
	}
	if s == nil || s.CoachID != coachID {
		responses.NotFound(c, "Session")
		return nil, 0, false
	}
	return s, coachID, true
}

// editor loads an editor for the session.
func (sc *SessionController) editor(c *gin.Context, s *Session) (*Editor, bool) {
	ed := NewEditor(s.ID, sc.repo, sc.blockRepo)
	if err := ed.Load(); err != nil {
		responses.InternalServerError(c, "Failed to load session plan")
		return nil, false
	}
	return ed, true
}

func (sc *SessionController) sendView(c *gin.Context, statusCode int, message string, s *Session, ed *Editor) {
	responses.SendSuccess(c, statusCode, message, SessionView{
		Session:       s,
		Groups:        BuildGroupViews(ed.Groups()),
		TotalDuration: ed.TotalDuration(),
	})
}

// engineError maps planner sentinels onto HTTP responses.
func engineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planner.ErrNotFound):
		responses.NotFound(c, "Assignment")
	case errors.Is(err, planner.ErrGroupMissing):
		responses.NotFound(c, "Group")
	case errors.Is(err, planner.ErrGroupFull):
		responses.SendError(c, http.StatusConflict, "Group already has two practices")
	case errors.Is(err, planner.ErrIndexOutOfRange):
		responses.BadRequest(c, "Group index out of range")
	default:
		responses.InternalServerError(c, "Failed to apply change")
	}
}

// CreateSession godoc
// @Summary Create a training session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session body CreateSessionRequest true "Session data"
// @Success 201 {object} responses.SuccessResponse{data=Session}
// @Security ApiKeyAuth
// @Router /sessions [post]
func (sc *SessionController) CreateSession(c *gin.Context) {
	coachID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	s := &Session{
		Title:   req.Title,
		CoachID: coachID,
		TeamID:  req.TeamID,
		Date:    req.Date,
		Notes:   req.Notes,
	}
	if err := sc.repo.CreateSession(s); err != nil {
		responses.InternalServerError(c, "Failed to create session")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Session created", s)
}

// ListSessions godoc
// @Summary List the coach's sessions
// @Tags Sessions
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} responses.PaginatedResponse{data=[]Session}
// @Security ApiKeyAuth
// @Router /sessions [get]
func (sc *SessionController) ListSessions(c *gin.Context) {
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

	sessions, total, err := sc.repo.GetSessionsByCoachID(coachID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list sessions")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", sessions, total, page, limit)
}

// GetSession godoc
// @Summary Get a session with its grouped plan
// @Tags Sessions
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {object} responses.SuccessResponse{data=SessionView}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{session_id} [get]
func (sc *SessionController) GetSession(c *gin.Context) {
	s, _, ok := sc.ownedSession(c)
	if !ok {
		return
	}
	ed, ok := sc.editor(c, s)
	if !ok {
		return
	}
	sc.sendView(c, http.StatusOK, "", s, ed)
}

// UpdateSession godoc
// @Summary Update session metadata
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param session body UpdateSessionRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse{data=Session}
// @Security ApiKeyAuth
// @Router /sessions/{session_id} [put]
func (sc *SessionController) UpdateSession(c *gin.Context) {
	s, _, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Title != nil {
		s.Title = *req.Title
	}
	if req.TeamID != nil {
		s.TeamID = req.TeamID
	}
	if req.Date != nil {
		s.Date = req.Date
	}
	if req.Notes != nil {
		s.Notes = *req.Notes
	}
	if err := sc.repo.UpdateSession(s); err != nil {
		responses.InternalServerError(c, "Failed to update session")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Session updated", s)
}

// DeleteSession godoc
// @Summary Delete a session and its assignments
// @Tags Sessions
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /sessions/{session_id} [delete]
func (sc *SessionController) DeleteSession(c *gin.Context) {
	s, _, ok := sc.ownedSession(c)
	if !ok {
		return
	}
	if err := sc.repo.DeleteSession(s.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete session")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Session deleted", nil)
}

// AssignBlock godoc
// @Summary Append a block as a new group at the end of the session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param body body AssignBlockRequest true "Block to assign"
// @Success 201 {object} responses.SuccessResponse{data=SessionView}
// @Security ApiKeyAuth
// @Router /sessions/{session_id}/assignments [post]
func (sc *SessionController) AssignBlock(c *gin.Context) {
	s, coachID, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	var req AssignBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if ok := sc.blockVisible(c, req.BlockID, coachID); !ok {
		return
	}

	ed, ok := sc.editor(c, s)
	if !ok {
		return
	}
	if _, err := ed.Assign(req.BlockID); err != nil {
		engineError(c, err)
		return
	}
	sc.sendView(c, http.StatusCreated, "Block assigned", s, ed)
}

// blockVisible rejects assigning a block the coach cannot see.
func (sc *SessionController) blockVisible(c *gin.Context, blockID, coachID uint) bool {
	b, err := sc.blockRepo.GetBlockByID(blockID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch block")
		return false
	}
	if b == nil {
		responses.NotFound(c, "Block")
		return false
	}

	coach, err := sc.userRepo.GetUserByID(coachID)
	if err != nil || coach == nil {
		responses.Unauthorized(c, "Account not found")
		return false
	}
	if !b.VisibleTo(coach.ID, coach.ClubID) {
		responses.NotFound(c, "Block")
		return false
	}
	return true
}

// AddSimultaneous godoc
// @Summary Add a simultaneous practice to a group
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param position path int true "Group position"
// @Param body body AssignBlockRequest true "Block to add"
// @Success 201 {object} responses.SuccessResponse{data=SessionView}
// @Failure 409 {object} responses.ErrorResponse "Group already has two practices"
// @Security ApiKeyAuth
// @Router /sessions/{session_id}/groups/{position}/simultaneous [post]
func (sc *SessionController) AddSimultaneous(c *gin.Context) {
	s, coachID, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	position, err := strconv.Atoi(c.Param("position"))
	if err != nil || position < 0 {
		responses.BadRequest(c, "Invalid group position")
		return
	}

	var req AssignBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if ok := sc.blockVisible(c, req.BlockID, coachID); !ok {
		return
	}

	ed, ok := sc.editor(c, s)
	if !ok {
		return
	}
	if _, err := ed.AddSimultaneous(req.BlockID, position); err != nil {
		engineError(c, err)
		return
	}
	sc.sendView(c, http.StatusCreated, "Simultaneous practice added", s, ed)
}

// RemoveAssignment godoc
// @Summary Remove a practice from the session
// @Tags Sessions
// @Produce json
// @Param session_id path int true "Session ID"
// @Param assignment_id path int true "Assignment ID"
// @Success 200 {object} responses.SuccessResponse{data=SessionView}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{session_id}/assignments/{assignment_id} [delete]
func (sc *SessionController) RemoveAssignment(c *gin.Context) {
	s, _, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	assignmentID, err := strconv.ParseUint(c.Param("assignment_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid assignment ID")
		return
	}

	ed, ok := sc.editor(c, s)
	if !ok {
		return
	}
	if err := ed.Remove(uint(assignmentID)); err != nil {
		engineError(c, err)
		return
	}
	sc.sendView(c, http.StatusOK, "Practice removed", s, ed)
}

// ReorderGroups godoc
// @Summary Move a group to a new index (drag-and-drop)
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param body body ReorderRequest true "From/to group indices"
// @Success 200 {object} responses.SuccessResponse{data=SessionView}
// @Security ApiKeyAuth
// @Router /sessions/{session_id}/reorder [put]
func (sc *SessionController) ReorderGroups(c *gin.Context) {
	s, _, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	ed, ok := sc.editor(c, s)
	if !ok {
		return
	}
	if err := ed.Reorder(*req.FromIndex, *req.ToIndex); err != nil {
		engineError(c, err)
		return
	}
	sc.sendView(c, http.StatusOK, "Groups reordered", s, ed)
}

// SetAssignmentDuration godoc
// @Summary Set a practice's duration (synced across its group)
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param assignment_id path int true "Assignment ID"
// @Param body body SetDurationRequest true "Duration in minutes"
// @Success 200 {object} responses.SuccessResponse{data=SessionView}
// @Security ApiKeyAuth
// @Router /sessions/{session_id}/assignments/{assignment_id}/duration [put]
func (sc *SessionController) SetAssignmentDuration(c *gin.Context) {
	s, _, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	assignmentID, err := strconv.ParseUint(c.Param("assignment_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid assignment ID")
		return
	}

	var req SetDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	ed, ok := sc.editor(c, s)
	if !ok {
		return
	}
	if err := ed.SetDuration(uint(assignmentID), req.Minutes); err != nil {
		engineError(c, err)
		return
	}
	sc.sendView(c, http.StatusOK, "Duration updated", s, ed)
}

// EditAssignmentBlock godoc
// @Summary Edit the block behind an assignment (copy-on-write)
// @Description Owners edit the catalog block in place. Editing someone
// @Description else's shared block creates a private copy and repoints only
// @Description this assignment; other sessions keep the original.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param assignment_id path int true "Assignment ID"
// @Param patch body block.Patch true "Fields to change"
// @Success 200 {object} responses.SuccessResponse{data=EditBlockResponse}
// @Security ApiKeyAuth
// @Router /sessions/{session_id}/assignments/{assignment_id}/block [put]
func (sc *SessionController) EditAssignmentBlock(c *gin.Context) {
	s, coachID, ok := sc.ownedSession(c)
	if !ok {
		return
	}

	assignmentID, err := strconv.ParseUint(c.Param("assignment_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid assignment ID")
		return
	}

	var patch block.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	ed, ok := sc.editor(c, s)
	if !ok {
		return
	}
	edited, copied, err := ed.EditBlock(uint(assignmentID), patch, coachID)
	if err != nil {
		engineError(c, err)
		return
	}

	message := "Block updated"
	if copied {
		message = "Block copied and updated"
	}
	responses.SendSuccess(c, http.StatusOK, message, EditBlockResponse{Block: edited, Copied: copied})
}
