package http

import (
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/canonical"
)

func toBlockDTO(b chain.Block) (dto.BlockDTO, error) {
	out := dto.BlockDTO{
		Index:        b.Index,
		Timestamp:    canonical.FormatTime(b.Timestamp),
		PreviousHash: b.PreviousHash,
		Hash:         b.Hash,
	}
	if b.Transaction != nil {
		raw, err := canonical.Encode(b.Transaction.Attributes())
		if err != nil {
			return dto.BlockDTO{}, err
		}
		out.Transaction = raw
	}
	return out, nil
}

func toBlockDTOs(blocks []chain.Block) ([]dto.BlockDTO, error) {
	out := make([]dto.BlockDTO, 0, len(blocks))
	for _, b := range blocks {
		d, err := toBlockDTO(b)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func toItemDTO(p *entity.ProductState) dto.InventoryItemDTO {
	locs := make(map[string]int64, len(p.Locations))
	for loc, q := range p.Locations {
		locs[loc] = q
	}
	return dto.InventoryItemDTO{
		SKU:       p.SKU,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Total:     p.Total(),
		Locations: locs,
	}
}

func toVerificationDTO(v chain.Verification, algorithm string) dto.VerificationDTO {
	out := dto.VerificationDTO{Valid: v.Valid, Length: v.Length, HashAlgorithm: algorithm}
	if !v.Valid {
		idx := v.Index
		out.Index = &idx
		out.Reason = v.Reason
		out.Expected = v.Expected
		out.Actual = v.Actual
	}
	return out
}

// toTransaction arma el borrador a partir del cuerpo y la identidad del token.
func toTransaction(in dto.ProposeTransactionRequest, actor entity.Actor) (entity.Transaction, bool) {
	switch entity.TxType(in.TxType) {
	case entity.TxCreateItem:
		return entity.CreateItem{
			SKU: in.ItemSku, Name: in.ItemName, Quantity: in.Quantity, ToLocation: in.ToLocation,
			Price: in.Price, Category: in.Category, Actor: actor,
		}, true
	case entity.TxStockIn:
		return entity.StockIn{SKU: in.ItemSku, Quantity: in.Quantity, Location: in.Location, Actor: actor}, true
	case entity.TxStockOut:
		return entity.StockOut{SKU: in.ItemSku, Quantity: in.Quantity, Location: in.Location, Actor: actor}, true
	case entity.TxMove:
		return entity.Move{SKU: in.ItemSku, Quantity: in.Quantity, FromLocation: in.FromLocation, ToLocation: in.ToLocation, Actor: actor}, true
	}
	return nil, false
}
