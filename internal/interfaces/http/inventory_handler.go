package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario y del
// agregado de stock (protegido).
type InventoryHandler struct {
	ledger    *ledger.UseCase
	query     *inventory.QueryUseCase
	reconcile *inventory.ReconcileUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledgerUC *ledger.UseCase, query *inventory.QueryUseCase, reconcile *inventory.ReconcileUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledgerUC, query: query, reconcile: reconcile}
}

// RegisterMovement godoc
// @Summary      Registrar un movimiento manual en el libro
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_id, direction (in|out), quantity, reason, reference"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	reason := in.Reason
	if reason == "" {
		reason = entity.ReasonManualAdjustment
	}
	mov, err := h.ledger.Append(c.Context(), ledger.AppendInput{
		ItemID:          in.ItemID,
		Direction:       in.Direction,
		Quantity:        in.Quantity,
		Reason:          reason,
		ReferenceNumber: in.Reference,
		CreatedBy:       GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:              mov.ID,
		ItemID:          mov.ItemID,
		WarehouseID:     mov.WarehouseID,
		Direction:       mov.Direction,
		Quantity:        mov.Quantity,
		Reason:          mov.Reason,
		ReferenceNumber: mov.ReferenceNumber,
		CreatedAt:       mov.CreatedAt,
		CreatedBy:       mov.CreatedBy,
	})
}

// ListItems godoc
// @Summary      Listar ítems de inventario de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "Bodega (UUID)"
// @Param        limit         query  int     false  "Tamaño de página"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	items, err := h.query.ListItems(warehouseID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// GetItem godoc
// @Summary      Obtener un ítem de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.query.GetItem(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	movs, err := h.query.ListMovements(c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movs), "movements": movs})
}

// GetBalance godoc
// @Summary      Saldo calculado por replay del libro
// @Description  Recalcula el saldo del ítem desde sus movimientos, sin tocar
//               la caché del agregado. Útil para auditar discrepancias.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/balance [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.ledger.ComputeBalance(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item_id": c.Params("id"), "balance": balance})
}

// RecalculateItem godoc
// @Summary      Reconciliar un ítem contra el libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/recalculate [post]
func (h *InventoryHandler) RecalculateItem(c *fiber.Ctx) error {
	item, err := h.reconcile.RecalculateOne(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.InventoryItemResponse{
		ID:           item.ID,
		ProductID:    item.ProductID,
		WarehouseID:  item.WarehouseID,
		Name:         item.Name,
		Code:         item.Code,
		CurrentStock: item.CurrentStock,
		MinimumStock: item.MinimumStock,
		Status:       item.Status,
		UpdatedAt:    item.UpdatedAt,
	})
}

// RecalculateAll godoc
// @Summary      Reconciliación batch de todos los ítems
// @Description  Recorre todos los ítems y reconstruye su stock desde el libro.
//               Un ítem con error no detiene el barrido; se reporta al final.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/inventory/recalculate [post]
func (h *InventoryHandler) RecalculateAll(c *fiber.Ctx) error {
	result, err := h.reconcile.RecalculateAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":   result.Total,
		"updated": result.Updated,
		"errors":  result.Errors,
		"detail":  result.ErrorsList,
	})
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
