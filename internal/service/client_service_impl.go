package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type clientService struct {
	clients repository.ClientRepo
	uow     db.UnitOfWork
	deps
}

func NewClientService(clients repository.ClientRepo, uow db.UnitOfWork, opts ...Option) ClientService {
	return &clientService{clients: clients, uow: uow, deps: newDeps(opts)}
}

func (s *clientService) List(ctx context.Context, limit int) ([]*domain.Client, error) {
	clients, err := s.clients.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []*domain.Client{}
	}
	return clients, nil
}

func (s *clientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *clientService) Create(ctx context.Context, actor domain.Actor, c *domain.Client) (err error) {
	startedAt := s.now()
	fields := map[string]any{"name": c.Name}
	defer func() { observe(ctx, s.observer, "create-client", startedAt, fields, err) }()

	if err = requireAdmin(actor); err != nil {
		return err
	}
	c.Email = strings.TrimSpace(c.Email)
	if err = c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := s.nowUTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	fields["client_id"] = c.ID
	return s.clients.Create(ctx, c)
}

// Update renames a client; cached general reports of its projects are
// dropped since they carry the client name.
func (s *clientService) Update(ctx context.Context, actor domain.Actor, c *domain.Client) (err error) {
	startedAt := s.now()
	fields := map[string]any{"client_id": c.ID}
	defer func() { observe(ctx, s.observer, "update-client", startedAt, fields, err) }()

	if err = requireAdmin(actor); err != nil {
		return err
	}
	c.Email = strings.TrimSpace(c.Email)
	if err = c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = s.nowUTC()

	var projectIDs []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLiteClientRepo(tx)
		existing, err := txClients.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		c.CreatedAt = existing.CreatedAt
		projects, err := repository.NewSQLiteProjectRepo(tx).List(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			if p.ClientID == c.ID {
				projectIDs = append(projectIDs, p.ID)
			}
		}
		return txClients.Update(ctx, c)
	})
	if err != nil {
		return err
	}
	for _, id := range projectIDs {
		s.invalidate(ctx, id)
	}
	return nil
}

// Delete refuses while any project belongs to the client.
func (s *clientService) Delete(ctx context.Context, actor domain.Actor, id string) (err error) {
	startedAt := s.now()
	fields := map[string]any{"client_id": id}
	defer func() { observe(ctx, s.observer, "delete-client", startedAt, fields, err) }()

	if err = requireAdmin(actor); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLiteProjectRepo(tx).CountByClient(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			var errs domain.ValidationErrors
			errs.Add("id", fmt.Sprintf("client has %d projects", n))
			return errs
		}
		return repository.NewSQLiteClientRepo(tx).Delete(ctx, id)
	})
}

func checkClient(ctx context.Context, clients repository.ClientRepo, id string) error {
	if _, err := clients.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			var errs domain.ValidationErrors
			errs.Add("clientId", fmt.Sprintf("unknown client %q", id))
			return errs
		}
		return err
	}
	return nil
}
