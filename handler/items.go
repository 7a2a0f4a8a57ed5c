package handler

import (
	"log"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/stevemurr/inventory-server/item"
)

const msgNotFound = "Item not found"

func (h *Handler) loadFailed(w http.ResponseWriter, err error) {
	log.Printf("handler: load items: %v", err)
	writeError(w, http.StatusInternalServerError, "Failed to load items: "+err.Error())
}

func (h *Handler) saveFailed(w http.ResponseWriter, err error) {
	log.Printf("handler: save items: %v", err)
	writeError(w, http.StatusInternalServerError, "Failed to save items: "+err.Error())
}

// validationFailed reports an *item.ValidationError; its message names the field.
func validationFailed(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, err.Error())
}

func (h *Handler) listItems(w http.ResponseWriter, _ *http.Request) {
	items, err := h.store.Load()
	if err != nil {
		h.loadFailed(w, err)
		return
	}
	if items == nil {
		items = []item.Item{}
	}
	writeSuccess(w, http.StatusOK, "Items retrieved successfully", items)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Load()
	if err != nil {
		h.loadFailed(w, err)
		return
	}
	i := item.Index(items, r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeSuccess(w, http.StatusOK, "Item retrieved successfully", items[i])
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	p, ok := readPayload(w, r)
	if !ok {
		return
	}
	it, err := item.ValidateForCreate(p)
	if err != nil {
		validationFailed(w, err)
		return
	}
	items, err := h.store.Load()
	if err != nil {
		h.loadFailed(w, err)
		return
	}
	it.ID = uuid.NewString()
	items = append(items, it)
	if err := h.store.Save(items); err != nil {
		h.saveFailed(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Item created successfully", it)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	p, ok := readPayload(w, r)
	if !ok {
		return
	}
	items, err := h.store.Load()
	if err != nil {
		h.loadFailed(w, err)
		return
	}
	i := item.Index(items, r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	updated, err := item.ValidateForUpdate(items[i], p)
	if err != nil {
		validationFailed(w, err)
		return
	}
	items[i] = updated
	if err := h.store.Save(items); err != nil {
		h.saveFailed(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Item updated successfully", updated)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Load()
	if err != nil {
		h.loadFailed(w, err)
		return
	}
	i := item.Index(items, r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	items = slices.Delete(items, i, i+1)
	if err := h.store.Save(items); err != nil {
		h.saveFailed(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Item deleted successfully", nil)
}
