package memory

import (
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

// paginate aplica limit/offset sobre un slice ya ordenado. limit <= 0
// significa sin límite.
func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// Los lookups por nombre en memoria normalizan al vuelo; en PostgreSQL la
// clave vive en la columna name_key.
func itemNameKey(item *entity.InventoryItem) string { return inventory.NormalizeName(item.Name) }

func productNameKey(p *entity.Product) string { return inventory.NormalizeName(p.Name) }

func cloneItem(item *entity.InventoryItem) *entity.InventoryItem {
	cp := *item
	if item.ProductID != nil {
		pid := *item.ProductID
		cp.ProductID = &pid
	}
	return &cp
}

func clonePurchase(p *entity.Purchase) *entity.Purchase {
	cp := *p
	cp.Items = append([]entity.PurchaseItem(nil), p.Items...)
	return &cp
}

func cloneOrder(o *entity.ProductionOrder) *entity.ProductionOrder {
	cp := *o
	cp.Outputs = append([]entity.ProductionOutput(nil), o.Outputs...)
	return &cp
}

func cloneTransfer(t *entity.StockTransfer) *entity.StockTransfer {
	cp := *t
	cp.Items = append([]entity.TransferItem(nil), t.Items...)
	cp.Discrepancies = append([]entity.Discrepancy(nil), t.Discrepancies...)
	if t.Approval != nil {
		a := *t.Approval
		cp.Approval = &a
	}
	if t.Dispatch != nil {
		d := *t.Dispatch
		cp.Dispatch = &d
	}
	if t.Receipt != nil {
		rc := *t.Receipt
		cp.Receipt = &rc
	}
	if t.ActualDeliveryDate != nil {
		ad := *t.ActualDeliveryDate
		cp.ActualDeliveryDate = &ad
	}
	return &cp
}
