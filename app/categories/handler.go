package categories

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/listacompras/listacompras/app/respond"
	"github.com/listacompras/listacompras/models"
)

type CategoryResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

type categoryInput struct {
	Nombre string `json:"nombre"`
}

type CategoryHandler struct {
	svc    *Service
	logger *slog.Logger
}

func NewCategoryHandler(svc *Service, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, logger: logger}
}

// Routes mounts the category endpoints on r.
func (h *CategoryHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleGetAll)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
}

func toResponse(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Nombre: c.Name}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toResponse(c)
	}
	respond.OK(w, response)
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	category, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	if category == nil {
		respond.OK(w, nil)
		return
	}
	respond.OK(w, toResponse(*category))
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input categoryInput
	if err := respond.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	id, err := h.svc.Create(r.Context(), input.Nombre)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, id)
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var input categoryInput
	if err := respond.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	affected, err := h.svc.Update(r.Context(), id, input.Nombre)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, affected)
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	affected, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, affected)
}
