package service

import (
	"tender-service/internal/entity"
)

func clamp(pg *entity.PaginationInput) *entity.PaginationInput {
	return entity.NewPaginationInput(pg.Limit, pg.Offset)
}

func mapTender(t *entity.Tender) *entity.TenderOutputModel {
	return &entity.TenderOutputModel{
		Id:             t.Id.String(),
		Name:           t.Name,
		Description:    t.Description,
		ServiceType:    t.ServiceType,
		Status:         t.Status,
		OrganizationId: t.OrganizationId.String(),
		Version:        t.Version,
		CreatedAt:      t.CreatedAt,
	}
}

func mapTenders(tenders []entity.Tender) []entity.TenderOutputModel {
	out := make([]entity.TenderOutputModel, 0, len(tenders))
	for i := range tenders {
		out = append(out, *mapTender(&tenders[i]))
	}

	return out
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:          b.Id.String(),
		Name:        b.Name,
		Description: b.Description,
		Status:      b.Status,
		Decision:    b.Decision,
		TenderId:    b.TenderId.String(),
		Version:     b.Version,
		CreatedAt:   b.CreatedAt,
	}
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	out := make([]entity.BidOutputModel, 0, len(bids))
	for i := range bids {
		out = append(out, *mapBid(&bids[i]))
	}

	return out
}
