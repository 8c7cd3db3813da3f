package service

import (
	"context"
	"fmt"

	repository "github.com/Kgadrw/profit-backend/internal/database/postgres"
	"github.com/Kgadrw/profit-backend/internal/entity"

	"github.com/google/uuid"
)

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) CreateClient(ctx context.Context, tenantID string, req *CreateClientRequest) (*entity.Client, error) {
	client := &entity.Client{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Category: req.Category,
		Notes:    req.Notes,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, tenantID, id string) (*entity.Client, error) {
	return s.clientRepo.GetByID(ctx, id, tenantID)
}

func (s *clientService) GetClients(ctx context.Context, tenantID string) ([]*entity.Client, error) {
	return s.clientRepo.GetByTenant(ctx, tenantID)
}

func (s *clientService) UpdateClient(ctx context.Context, tenantID, id string, req *UpdateClientRequest) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Category != nil {
		client.Category = *req.Category
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, tenantID, id string) error {
	return s.clientRepo.Delete(ctx, id, tenantID)
}
