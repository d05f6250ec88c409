package handlers

import (
	"net/http"

	"tennis-stats-api/packages/core/live"
	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/utils"

	"github.com/gin-gonic/gin"
)

type LiveHandler struct {
	registry *live.Registry
}

func NewLiveHandler(registry *live.Registry) *LiveHandler {
	return &LiveHandler{
		registry: registry,
	}
}

type SelectPairRequest struct {
	SetID         uint `json:"set_id"`
	MatchPlayerID uint `json:"match_player_id"`
}

type LiveSaveResponse struct {
	Outcomes []models.TableOutcome `json:"outcomes"`
	Session  live.View             `json:"session"`
}

func (h *LiveHandler) session(c *gin.Context) (*live.Session, bool) {
	auth, ok := requireAuth(c)
	if !ok {
		return nil, false
	}
	s, err := h.registry.Get(c.Param("id"), auth)
	if err != nil {
		respondError(c, err, "Failed to load live session")
		return nil, false
	}
	return s, true
}

func (h *LiveHandler) respondView(c *gin.Context, view live.View, err error, fallback string) {
	if err != nil {
		respondError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateSession opens a live input session
// @Summary Open a live session
// @Tags live
// @Security BearerAuth
// @Produce json
// @Success 201 {object} live.View
// @Router /live/sessions [post]
func (h *LiveHandler) CreateSession(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}

	s := h.registry.Create(auth)
	c.JSON(http.StatusCreated, s.View())
}

// GetSession returns the session state
// @Summary Get a live session
// @Tags live
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} live.View
// @Failure 404 {object} map[string]string
// @Router /live/sessions/{id} [get]
func (h *LiveHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.View())
}

// SelectPair switches the session to a set and match player
// @Summary Select set and player
// @Description Zero ids unselect. Pending tallies of the previous pair are saved in the background.
// @Tags live
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param selection body SelectPairRequest true "Pair to load"
// @Success 200 {object} live.View
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /live/sessions/{id}/selection [put]
func (h *LiveHandler) SelectPair(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req SelectPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := s.Select(c.Request.Context(), req.SetID, req.MatchPlayerID)
	h.respondView(c, view, err, "Failed to load statistics")
}

// Increment adds one to a tally
// @Summary Increment a tally
// @Tags live
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Param key path string true "Event key" Enums(fhWinners,bhWinners,forcedErrors,unforcedErrors,aces,doubleFaults,netErrors,longRalliesWon,longRalliesLost,volleyWinners,volleyErrors)
// @Success 200 {object} live.View
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /live/sessions/{id}/events/{key}/increment [post]
func (h *LiveHandler) Increment(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	view, err := s.Increment(utils.EventKey(c.Param("key")))
	h.respondView(c, view, err, "Failed to update tally")
}

// Decrement removes one from a tally, never going below zero
// @Summary Decrement a tally
// @Tags live
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Param key path string true "Event key"
// @Success 200 {object} live.View
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /live/sessions/{id}/events/{key}/decrement [post]
func (h *LiveHandler) Decrement(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	view, err := s.Decrement(utils.EventKey(c.Param("key")))
	h.respondView(c, view, err, "Failed to update tally")
}

// SetQuickKPIs replaces the quick KPIs
// @Summary Set quick KPIs
// @Tags live
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param kpis body models.QuickKPIs true "Quick KPIs"
// @Success 200 {object} live.View
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /live/sessions/{id}/kpis [put]
func (h *LiveHandler) SetQuickKPIs(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var kpis models.QuickKPIs
	if err := c.ShouldBindJSON(&kpis); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := s.SetQuickKPIs(kpis)
	h.respondView(c, view, err, "Failed to update quick KPIs")
}

// SetDetailed edits the detailed records without saving them
// @Summary Edit detailed statistics
// @Description Tallied fields edited here are overwritten by the tallies on the next save
// @Tags live
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param stats body models.UpsertSetStatsRequest true "Sections to replace"
// @Success 200 {object} live.View
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /live/sessions/{id}/detailed [put]
func (h *LiveHandler) SetDetailed(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req models.UpsertSetStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := s.SetDetailed(req)
	h.respondView(c, view, err, "Failed to update statistics")
}

// Save writes the current pair
// @Summary Save live statistics
// @Description 207 means some records were saved and some were not; nothing is rolled back
// @Tags live
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} LiveSaveResponse
// @Success 207 {object} LiveSaveResponse
// @Failure 409 {object} map[string]string
// @Failure 500 {object} LiveSaveResponse
// @Router /live/sessions/{id}/save [post]
func (h *LiveHandler) Save(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	result, view, err := s.Save(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to save statistics")
		return
	}

	c.JSON(saveStatus(result), LiveSaveResponse{Outcomes: result.Outcomes(), Session: view})
}

// DeleteSession closes a session, discarding unsaved edits
// @Summary Close a live session
// @Tags live
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /live/sessions/{id} [delete]
func (h *LiveHandler) DeleteSession(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}

	if err := h.registry.Remove(c.Param("id"), auth); err != nil {
		respondError(c, err, "Failed to close live session")
		return
	}

	c.Status(http.StatusNoContent)
}
