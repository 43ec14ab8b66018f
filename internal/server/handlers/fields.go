package handlers

import (
	"net/http"

	"github.com/productioncity/salutation/internal/server/response"
	"github.com/productioncity/salutation/pkg/errors"
	"github.com/productioncity/salutation/pkg/fields"
)

// HandleMergeFields handles GET /api/v1/fields/merge.
// @Summary Templating merge fields
// @Tags fields
// @Produce json
// @Success 200 {object} response.Response{data=[]fields.Field}
// @Router /api/v1/fields/merge [get].
func (h *Handlers) HandleMergeFields(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.service.MergeFields())
}

// HandleRecipientFields handles GET /api/v1/fields/recipient. It answers
// 503 when the campaign integration is not installed.
// @Summary Campaign recipient fields
// @Tags fields
// @Produce json
// @Success 200 {object} response.Response{data=[]fields.Field}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/fields/recipient [get].
func (h *Handlers) HandleRecipientFields(w http.ResponseWriter, _ *http.Request) {
	list, ok := h.service.RecipientFields()
	if !ok {
		response.ErrorFromType(w, errors.NewDependencyError(fields.CampaignModel, "campaign integration not installed"))
		return
	}
	response.OK(w, list)
}
