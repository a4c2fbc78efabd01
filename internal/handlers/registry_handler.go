package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/httpresp"
	ucRegistry "github.com/BruksfildServices01/dock-scheduler/internal/usecase/registry"
)

// ======================================================
// HANDLER
// ======================================================

// RegistryHandler expõe o cadastro de plantas e fornecedores.
type RegistryHandler struct {
	plants    *ucRegistry.Plants
	suppliers *ucRegistry.Suppliers
}

func NewRegistryHandler(plants *ucRegistry.Plants, suppliers *ucRegistry.Suppliers) *RegistryHandler {
	return &RegistryHandler{plants: plants, suppliers: suppliers}
}

// ======================================================
// PLANTS
// ======================================================

// ListPlants aceita ?include_inactive=true (apenas admin).
func (h *RegistryHandler) ListPlants(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	rows, err := h.plants.List(c.Request.Context(), p, c.Query("include_inactive") == "true")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *RegistryHandler) CreatePlant(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req ucRegistry.PlantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	plant, err := h.plants.Create(c.Request.Context(), p, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, plant)
}

func (h *RegistryHandler) UpdatePlant(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ucRegistry.PlantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	plant, err := h.plants.Update(c.Request.Context(), p, id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, plant)
}

// DeactivatePlant é exclusão lógica.
func (h *RegistryHandler) DeactivatePlant(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	plant, err := h.plants.Deactivate(c.Request.Context(), p, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, plant)
}

// ======================================================
// SUPPLIERS
// ======================================================

func (h *RegistryHandler) ListSuppliers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	rows, err := h.suppliers.List(c.Request.Context(), p, c.Query("include_inactive") == "true")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *RegistryHandler) CreateSupplier(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req ucRegistry.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	supplier, err := h.suppliers.Create(c.Request.Context(), p, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, supplier)
}

func (h *RegistryHandler) UpdateSupplier(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ucRegistry.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	supplier, err := h.suppliers.Update(c.Request.Context(), p, id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, supplier)
}

// DeactivateSupplier devolve 409 enquanto houver agendamentos em aberto.
func (h *RegistryHandler) DeactivateSupplier(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	supplier, err := h.suppliers.Deactivate(c.Request.Context(), p, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, supplier)
}
