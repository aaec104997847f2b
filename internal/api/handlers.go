package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flutterbye/sms-engine/internal/domain"
	"github.com/flutterbye/sms-engine/internal/render"
	"github.com/flutterbye/sms-engine/internal/sms"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store     *sms.Store
	renderer  *render.Engine
	startTime time.Time
}

// NewHandlers creates a new Handlers instance
func NewHandlers(store *sms.Store, renderer *render.Engine) *Handlers {
	return &Handlers{
		store:     store,
		renderer:  renderer,
		startTime: time.Now(),
	}
}

// HealthCheck reports service liveness
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.startTime).String(),
	})
}

// createdResponse wraps a created resource with validation warnings.
// Creation always succeeds; warnings flag fields the caller should fix.
type createdResponse struct {
	Data     interface{}      `json:"data"`
	Warnings []sms.FieldError `json:"warnings,omitempty"`
}

// ListCampaigns returns all campaigns, newest first
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Campaigns())
}

// CreateCampaign creates a campaign from the posted input
func (h *Handlers) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input sms.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	warnings := input.Validate()
	campaign := h.store.CreateCampaign(input)
	respondJSON(w, http.StatusCreated, createdResponse{Data: campaign, Warnings: warnings})
}

// GetCampaign returns one campaign by id
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	c := h.store.Campaign(chi.URLParam(r, "id"))
	if c == nil {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// LaunchCampaign activates a campaign and starts its delivery worker
func (h *Handlers) LaunchCampaign(w http.ResponseWriter, r *http.Request) {
	c := h.store.LaunchCampaign(chi.URLParam(r, "id"))
	if c == nil {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// PauseCampaign suspends delivery for an active campaign
func (h *Handlers) PauseCampaign(w http.ResponseWriter, r *http.Request) {
	c := h.store.PauseCampaign(chi.URLParam(r, "id"))
	if c == nil {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// ResumeCampaign restarts delivery for a paused campaign
func (h *Handlers) ResumeCampaign(w http.ResponseWriter, r *http.Request) {
	c := h.store.ResumeCampaign(chi.URLParam(r, "id"))
	if c == nil {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// ListContacts returns all contacts, newest first
func (h *Handlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Contacts())
}

// AddContact adds a contact from the posted input
func (h *Handlers) AddContact(w http.ResponseWriter, r *http.Request) {
	var input sms.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	warnings := input.Validate()
	contact := h.store.AddContact(input)
	respondJSON(w, http.StatusCreated, createdResponse{Data: contact, Warnings: warnings})
}

// ListTemplates returns all templates, most used first
func (h *Handlers) ListTemplates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Templates())
}

// CreateTemplate creates a template from the posted input
func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var input sms.TemplateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	warnings := input.Validate()
	tpl := h.store.CreateTemplate(input)
	respondJSON(w, http.StatusCreated, createdResponse{Data: tpl, Warnings: warnings})
}

// GetTemplate returns one template by id
func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := h.store.Template(chi.URLParam(r, "id"))
	if tpl == nil {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}
	respondJSON(w, http.StatusOK, tpl)
}

// UseTemplate bumps a template's usage counter
func (h *Handlers) UseTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.store.Template(id) == nil {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}
	h.store.IncrementTemplateUsage(id)
	respondJSON(w, http.StatusOK, h.store.Template(id))
}

type previewRequest struct {
	ContactID string                 `json:"contact_id"`
	Variables map[string]interface{} `json:"variables"`
}

// PreviewTemplate renders a template body for one contact
func (h *Handlers) PreviewTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := h.store.Template(chi.URLParam(r, "id"))
	if tpl == nil {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}

	var req previewRequest
	if r.Body != nil {
		// Empty body previews with fallback variables only.
		json.NewDecoder(r.Body).Decode(&req)
	}

	ctx := render.ContactContext(h.findContact(req.ContactID))
	for k, v := range req.Variables {
		ctx[k] = v
	}

	result, err := h.renderer.RenderWithMode(tpl.Message, ctx, render.ModeStrict)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) findContact(id string) *domain.Contact {
	if id == "" {
		return nil
	}
	for _, c := range h.store.Contacts() {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// GetAnalytics returns the aggregate campaign report
func (h *Handlers) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Analytics())
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
