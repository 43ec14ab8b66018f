package handlers

import (
	"net/http"

	"github.com/productioncity/salutation/internal/server/events"
	"github.com/productioncity/salutation/internal/server/response"
)

// HandleBackfill handles POST /api/v1/backfill.
// @Summary Backfill name parts
// @Description Fills blank, unpinned name parts on every person. Failures
// @Description on single contacts are reported, not fatal.
// @Tags operations
// @Produce json
// @Success 200 {object} response.Response{data=salutation.BackfillReport}
// @Failure 500 {object} response.Response{error=response.Error}
// @Router /api/v1/backfill [post].
func (h *Handlers) HandleBackfill(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Backfill(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.broker.Publish(events.BackfillCompleted, "", report)
	response.OK(w, report)
}

// splitRequest is the body of POST /api/v1/split.
type splitRequest struct {
	Name   string `json:"name"`
	Locale string `json:"locale,omitempty"`
	Title  string `json:"title,omitempty"`
}

// HandleSplit handles POST /api/v1/split. Nothing is stored.
// @Summary Split a full name
// @Tags operations
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=names.Parts}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/split [post].
func (h *Handlers) HandleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := decode(r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, h.service.Split(req.Name, req.Locale, req.Title))
}
