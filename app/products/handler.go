package products

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/listacompras/listacompras/app/respond"
	"github.com/listacompras/listacompras/models"
)

type ProductResponse struct {
	ID          uint   `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	CategoriaID uint   `json:"categoria_id"`
}

type productInput struct {
	Nombre      string `json:"nombre"`
	CategoriaID uint   `json:"categoria_id"`
	Descripcion string `json:"descripcion"`
}

func (in productInput) toInput() Input {
	return Input{
		Name:        in.Nombre,
		CategoryID:  in.CategoriaID,
		Description: in.Descripcion,
	}
}

type ProductHandler struct {
	svc    *Service
	logger *slog.Logger
}

func NewProductHandler(svc *Service, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, logger: logger}
}

// Routes mounts the product endpoints on r.
func (h *ProductHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleGetAll)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGetProduct)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
}

func toResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Nombre:      p.Name,
		Descripcion: p.Description,
		CategoriaID: p.CategoryID,
	}
}

func (h *ProductHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	products := make([]ProductResponse, len(res))
	for i, p := range res {
		products[i] = toResponse(p)
	}
	respond.OK(w, products)
}

func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	product, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	if product == nil {
		respond.OK(w, nil)
		return
	}
	respond.OK(w, toResponse(*product))
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input productInput
	if err := respond.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	id, err := h.svc.Create(r.Context(), input.toInput())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, id)
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var input productInput
	if err := respond.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	affected, err := h.svc.Update(r.Context(), id, input.toInput())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, affected)
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
