package table

import (
	"context"
	"log"

	"github.com/google/uuid"

	"qrqaema/domain"
	"qrqaema/entities"
	"qrqaema/internal/utils/qrcodegen"
	"qrqaema/internal/utils/storage"
	"qrqaema/pkg/access"
)

type (
	TableService interface {
		AddTable(ctx context.Context, userID, restaurantID uuid.UUID, req domain.AddTableRequest) (domain.TableResponse, error)
		GetTables(ctx context.Context, userID, restaurantID uuid.UUID) ([]domain.TableResponse, error)
		GetTable(ctx context.Context, userID, restaurantID, tableID uuid.UUID) (domain.TableResponse, error)
		UpdateTable(ctx context.Context, userID, restaurantID, tableID uuid.UUID, req domain.UpdateTableRequest) (domain.TableResponse, error)
		DeleteTable(ctx context.Context, userID, restaurantID, tableID uuid.UUID) error
		GetQrCode(ctx context.Context, userID, restaurantID, tableID uuid.UUID) ([]byte, error)
	}

	tableService struct {
		tableRepository TableRepository
		policy          access.Policy
		s3              storage.AwsS3
	}
)

func NewTableService(tableRepository TableRepository, policy access.Policy, s3 storage.AwsS3) TableService {
	return &tableService{
		tableRepository: tableRepository,
		policy:          policy,
		s3:              s3,
	}
}

// AddTable creates the table and stores its QR code. A QR upload
// failure is logged, not fatal; the code can be regenerated on demand.
func (s *tableService) AddTable(ctx context.Context, userID, restaurantID uuid.UUID, req domain.AddTableRequest) (domain.TableResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.TableResponse{}, err
	}

	table := &entities.Table{
		RestaurantID: restaurantID,
		Status:       entities.TableStatusAvailable,
		Capacity:     req.Capacity,
	}
	if table.Capacity == 0 {
		table.Capacity = 4
	}
	if err := s.tableRepository.Create(ctx, table); err != nil {
		return domain.TableResponse{}, err
	}

	qrURL := s.storeQrCode(restaurantID, table.ID)
	res := toTableResponse(table)
	res.QrCodeURL = qrURL
	return res, nil
}

func (s *tableService) storeQrCode(restaurantID, tableID uuid.UUID) string {
	png, err := qrcodegen.Generate(restaurantID.String(), tableID.String())
	if err != nil {
		log.Printf("qr generation for table %s failed: %v", tableID, err)
		return ""
	}
	objectKey := qrcodegen.ObjectKey(restaurantID.String(), tableID.String())
	if _, err := s.s3.UploadBytes(objectKey, png, "image/png"); err != nil {
		log.Printf("qr upload for table %s failed: %v", tableID, err)
		return ""
	}
	return s.s3.GetPublicLinkKey(objectKey)
}

func (s *tableService) GetTables(ctx context.Context, userID, restaurantID uuid.UUID) ([]domain.TableResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return nil, err
	}

	tables, err := s.tableRepository.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TableResponse, 0, len(tables))
	for _, table := range tables {
		item := toTableResponse(table)
		item.QrCodeURL = s.s3.GetPublicLinkKey(qrcodegen.ObjectKey(restaurantID.String(), table.ID.String()))
		res = append(res, item)
	}
	return res, nil
}

func (s *tableService) GetTable(ctx context.Context, userID, restaurantID, tableID uuid.UUID) (domain.TableResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.TableResponse{}, err
	}

	table, err := s.tableInRestaurant(ctx, restaurantID, tableID)
	if err != nil {
		return domain.TableResponse{}, err
	}

	res := toTableResponse(table)
	res.QrCodeURL = s.s3.GetPublicLinkKey(qrcodegen.ObjectKey(restaurantID.String(), table.ID.String()))
	return res, nil
}

func (s *tableService) UpdateTable(ctx context.Context, userID, restaurantID, tableID uuid.UUID, req domain.UpdateTableRequest) (domain.TableResponse, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return domain.TableResponse{}, err
	}

	table, err := s.tableInRestaurant(ctx, restaurantID, tableID)
	if err != nil {
		return domain.TableResponse{}, err
	}

	if req.Status != "" {
		table.Status = req.Status
	}
	if req.Capacity > 0 {
		table.Capacity = req.Capacity
	}
	if err := s.tableRepository.Update(ctx, table); err != nil {
		return domain.TableResponse{}, err
	}
	return toTableResponse(table), nil
}

func (s *tableService) DeleteTable(ctx context.Context, userID, restaurantID, tableID uuid.UUID) error {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return err
	}

	if _, err := s.tableInRestaurant(ctx, restaurantID, tableID); err != nil {
		return err
	}
	if err := s.tableRepository.Delete(ctx, tableID); err != nil {
		return err
	}

	objectKey := qrcodegen.ObjectKey(restaurantID.String(), tableID.String())
	if err := s.s3.DeleteFile(objectKey); err != nil {
		log.Printf("qr cleanup for table %s failed: %v", tableID, err)
	}
	return nil
}

// GetQrCode regenerates the PNG so a lost or stale object in storage
// never blocks printing.
func (s *tableService) GetQrCode(ctx context.Context, userID, restaurantID, tableID uuid.UUID) ([]byte, error) {
	if err := s.policy.CanManage(ctx, userID, restaurantID); err != nil {
		return nil, err
	}

	if _, err := s.tableInRestaurant(ctx, restaurantID, tableID); err != nil {
		return nil, err
	}
	return qrcodegen.Generate(restaurantID.String(), tableID.String())
}

func (s *tableService) tableInRestaurant(ctx context.Context, restaurantID, tableID uuid.UUID) (*entities.Table, error) {
	table, err := s.tableRepository.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table.RestaurantID != restaurantID {
		return nil, domain.ErrCrossTenantReference
	}
	return table, nil
}

func toTableResponse(table *entities.Table) domain.TableResponse {
	return domain.TableResponse{
		ID:       table.ID.String(),
		Number:   table.Number,
		Status:   table.Status,
		Capacity: table.Capacity,
	}
}
