package repository

import (
	"context"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The helpers below fetch one relation for a batch of parent rows. The
// caller joins the results in memory. A failing helper fails the whole read.

func customersByID(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]entity.Customer, error) {
	out := make(map[uuid.UUID]entity.Customer)
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	q, err := table(ctx, db, TableCustomers)
	if err != nil {
		return nil, err
	}
	var rows []entity.Customer
	if err := q.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, c := range rows {
		out[c.ID] = c
	}
	return out, nil
}

func vehiclesByID(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]entity.VehicleWithCustomer, error) {
	out := make(map[uuid.UUID]entity.VehicleWithCustomer)
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	q, err := table(ctx, db, TableVehicles)
	if err != nil {
		return nil, err
	}
	var rows []entity.Vehicle
	if err := q.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	ownerIDs := make([]uuid.UUID, 0, len(rows))
	for _, v := range rows {
		ownerIDs = append(ownerIDs, v.CustomerID)
	}
	owners, err := customersByID(ctx, db, ownerIDs)
	if err != nil {
		return nil, err
	}

	for _, v := range rows {
		vc := entity.VehicleWithCustomer{Vehicle: v}
		if c, ok := owners[v.CustomerID]; ok {
			c := c
			vc.Customer = &c
		}
		out[v.ID] = vc
	}
	return out, nil
}

func serviceTypesByID(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]entity.ServiceType, error) {
	out := make(map[uuid.UUID]entity.ServiceType)
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	q, err := table(ctx, db, TableServiceTypes)
	if err != nil {
		return nil, err
	}
	var rows []entity.ServiceType
	if err := q.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, st := range rows {
		out[st.ID] = st
	}
	return out, nil
}

type partRefRow struct {
	ID         uuid.UUID
	PartName   string
	PartNumber string
}

func partRefsByID(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]entity.PartRef, error) {
	out := make(map[uuid.UUID]entity.PartRef)
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	q, err := table(ctx, db, TableSpareParts)
	if err != nil {
		return nil, err
	}
	var rows []partRefRow
	if err := q.Select("id", "part_name", "part_number").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = entity.PartRef{PartName: p.PartName, PartNumber: p.PartNumber}
	}
	return out, nil
}

func servicePartsByService(ctx context.Context, db *gorm.DB, serviceIDs []uuid.UUID) (map[uuid.UUID][]entity.ServicePartDetail, error) {
	out := make(map[uuid.UUID][]entity.ServicePartDetail)
	serviceIDs = uniqueIDs(serviceIDs)
	if len(serviceIDs) == 0 {
		return out, nil
	}
	q, err := table(ctx, db, TableServiceParts)
	if err != nil {
		return nil, err
	}
	var rows []entity.ServicePart
	if err := q.Where("service_id IN ?", serviceIDs).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	partIDs := make([]uuid.UUID, 0, len(rows))
	for _, p := range rows {
		partIDs = append(partIDs, p.SparePartID)
	}
	refs, err := partRefsByID(ctx, db, partIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range rows {
		d := entity.ServicePartDetail{ServicePart: p}
		if ref, ok := refs[p.SparePartID]; ok {
			ref := ref
			d.SparePart = &ref
		}
		out[p.ServiceID] = append(out[p.ServiceID], d)
	}
	return out, nil
}

func saleItemsBySale(ctx context.Context, db *gorm.DB, saleIDs []uuid.UUID) (map[uuid.UUID][]entity.SaleItemDetail, error) {
	out := make(map[uuid.UUID][]entity.SaleItemDetail)
	saleIDs = uniqueIDs(saleIDs)
	if len(saleIDs) == 0 {
		return out, nil
	}
	q, err := table(ctx, db, TableSaleItems)
	if err != nil {
		return nil, err
	}
	var rows []entity.SaleItem
	if err := q.Where("sale_id IN ?", saleIDs).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	partIDs := make([]uuid.UUID, 0, len(rows))
	for _, it := range rows {
		partIDs = append(partIDs, it.SparePartID)
	}
	refs, err := partRefsByID(ctx, db, partIDs)
	if err != nil {
		return nil, err
	}

	for _, it := range rows {
		d := entity.SaleItemDetail{SaleItem: it}
		if ref, ok := refs[it.SparePartID]; ok {
			ref := ref
			d.SparePart = &ref
		}
		out[it.SaleID] = append(out[it.SaleID], d)
	}
	return out, nil
}
