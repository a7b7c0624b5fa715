package lists

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/listacompras/listacompras/app/respond"
	"github.com/listacompras/listacompras/models"
)

type ListResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

type ItemResponse struct {
	ID                uint    `json:"id"`
	ProductoID        uint    `json:"producto_id"`
	Cantidad          float64 `json:"cantidad"`
	ListaEncabezadoID uint    `json:"listaencabezado_id"`
}

type ListDetailResponse struct {
	ID     uint           `json:"id"`
	Nombre string         `json:"nombre"`
	Items  []ItemResponse `json:"items"`
}

type itemInput struct {
	ProductoID uint            `json:"producto_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

type listInput struct {
	Nombre string      `json:"nombre"`
	Items  []itemInput `json:"items"`
}

type ListHandler struct {
	svc    *Service
	logger *slog.Logger
}

func NewListHandler(svc *Service, logger *slog.Logger) *ListHandler {
	return &ListHandler{svc: svc, logger: logger}
}

// Routes mounts the list endpoints on r.
func (h *ListHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleGetAll)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Put("/{id}/producto/{item_id}", h.HandleDeleteItem)
}

func (h *ListHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	headers, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	response := make([]ListResponse, len(headers))
	for i, l := range headers {
		response[i] = ListResponse{ID: l.ID, Nombre: l.Name}
	}
	respond.OK(w, response)
}

func toDetail(list *models.ListWithItems) ListDetailResponse {
	items := make([]ItemResponse, len(list.Items))
	for i, item := range list.Items {
		items[i] = ItemResponse{
			ID:                item.ID,
			ProductoID:        item.ProductID,
			Cantidad:          item.Quantity.InexactFloat64(),
			ListaEncabezadoID: item.ListHeaderID,
		}
	}
	return ListDetailResponse{
		ID:     list.ID,
		Nombre: list.Name,
		Items:  items,
	}
}

func (h *ListHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	list, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, toDetail(list))
}

func (h *ListHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input listInput
	if err := respond.DecodeJSON(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	items := make([]ItemInput, len(input.Items))
	for i, item := range input.Items {
		items[i] = ItemInput{ProductID: item.ProductoID, Quantity: item.Cantidad}
	}

	id, err := h.svc.Create(r.Context(), input.Nombre, items)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, id)
}

func (h *ListHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.Error(w, r, h.logger, h.svc.Update(r.Context(), id))
}

func (h *ListHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

func (h *ListHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	listID, err := respond.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	itemID, err := respond.ParseID(chi.URLParam(r, "item_id"), "producto_id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	affected, err := h.svc.DeleteItem(r.Context(), listID, itemID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, affected)
}
