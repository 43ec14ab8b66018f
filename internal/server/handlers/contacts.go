package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/productioncity/salutation/internal/server/response"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
)

// HandleListContacts handles GET /api/v1/contacts.
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Param category query string false "person or organization"
// @Success 200 {object} response.Response{data=[]contacts.Contact}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/contacts [get].
func (h *Handlers) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	var q contacts.Query
	if raw := r.URL.Query().Get("category"); raw != "" {
		cat, err := contacts.ParseCategory(raw)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		q.Category = cat
	}

	list, err := h.service.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"contacts": list,
		"count":    len(list),
	})
}

// HandleCreateContacts handles POST /api/v1/contacts. The body is one
// change set or an array of them; an array is created in order and stops
// at the first failure.
// @Summary Create contacts
// @Tags contacts
// @Accept json
// @Produce json
// @Param body body contacts.Changes true "Contact or array of contacts"
// @Success 201 {object} response.Response{data=contacts.Contact}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/contacts [post].
func (h *Handlers) HandleCreateContacts(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decode(r, &raw); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var ins []contacts.Changes
		if err := unmarshalStrict(trimmed, &ins); err != nil {
			response.ErrorFromType(w, err)
			return
		}
		for i := range ins {
			if err := normalize(&ins[i]); err != nil {
				response.ErrorFromType(w, err)
				return
			}
		}

		created, err := h.service.CreateMany(r.Context(), ins)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		response.Created(w, map[string]any{
			"contacts": created,
			"count":    len(created),
		})
		return
	}

	var in contacts.Changes
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := unmarshalStrict(raw, &in); err != nil {
			response.ErrorFromType(w, err)
			return
		}
	}
	if err := normalize(&in); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	c, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, c)
}

// HandleGetContact handles GET /api/v1/contacts/{id}.
// @Summary Get a contact
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Response{data=contacts.Contact}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/contacts/{id} [get].
func (h *Handlers) HandleGetContact(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, c)
}

// HandleUpdateContact handles PATCH /api/v1/contacts/{id}.
// @Summary Update a contact
// @Description Applies a partial change set. Name parts are reconciled.
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param body body contacts.Changes true "Changes"
// @Success 200 {object} response.Response{data=contacts.Contact}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/contacts/{id} [patch].
func (h *Handlers) HandleUpdateContact(w http.ResponseWriter, r *http.Request) {
	var in contacts.Changes
	if err := decode(r, &in); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := normalize(&in); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	c, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, c)
}

// HandleDeleteContact handles DELETE /api/v1/contacts/{id}.
// @Summary Delete a contact
// @Tags contacts
// @Param id path string true "Contact ID"
// @Success 204
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/contacts/{id} [delete].
func (h *Handlers) HandleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	response.NoContent(w)
}

// HandleDisplayContact handles GET /api/v1/contacts/{id}/display. Blank
// name parts that are not pinned are filled as a side effect.
// @Summary Contact display label
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Response{data=object}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/contacts/{id}/display [get].
func (h *Handlers) HandleDisplayContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	display, err := h.service.Display(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, map[string]any{
		"id":      id,
		"display": display,
	})
}

// HandleResetContact handles POST /api/v1/contacts/{id}/reset.
// @Summary Reset a contact's name parts
// @Description Re-derives all name parts and clears the manual flags.
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Response{data=contacts.Contact}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/contacts/{id}/reset [post].
func (h *Handlers) HandleResetContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Reset(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, c)
}

// resetRequest is the body of POST /api/v1/contacts/reset.
type resetRequest struct {
	IDs []string `json:"ids"`
}

// HandleResetContacts handles POST /api/v1/contacts/reset. Every id is
// attempted; failures are reported together.
// @Summary Reset several contacts
// @Tags contacts
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/contacts/reset [post].
func (h *Handlers) HandleResetContacts(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decode(r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if len(req.IDs) == 0 {
		response.ErrorFromType(w, errors.NewValidationError("ids", req.IDs, "at least one id is required"))
		return
	}

	if err := h.service.Reset(r.Context(), req.IDs...); err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, map[string]any{
		"reset": req.IDs,
		"count": len(req.IDs),
	})
}

// fail logs err and writes the mapped error response.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.IsNotFound(err), errors.IsValidationError(err), errors.IsAlreadyExists(err):
		h.log(r).Debug().Err(err).Msg("Request rejected")
	default:
		h.log(r).Error().Err(err).Msg("Request failed")
	}
	response.ErrorFromType(w, err)
}

// normalize resolves category aliases in a change set.
func normalize(in *contacts.Changes) error {
	if in.Category == nil {
		return nil
	}
	cat, err := contacts.ParseCategory(in.Category.String())
	if err != nil {
		return err
	}
	in.Category = &cat
	return nil
}

func unmarshalStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.WrapParse("json", "", err)
	}
	return nil
}
