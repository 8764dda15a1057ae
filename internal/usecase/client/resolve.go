package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// USE CASE
// ======================================================

// ResolveOrCreate acha o cliente pelo telefone normalizado ou cria um novo.
// O nome só é gravado na criação; chamadas seguintes não o alteram.
type ResolveOrCreate struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewResolveOrCreate(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ResolveOrCreate {
	return &ResolveOrCreate{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ResolveOrCreate) Execute(
	ctx context.Context,
	name string,
	rawPhone string,
) (*models.Client, error) {

	// --------------------------------------------------
	// 1️⃣ Validação
	// --------------------------------------------------
	name = strings.TrimSpace(name)
	if !validators.ValidName(name) {
		return nil, httperr.Validation("invalid_name", "Nome é obrigatório.")
	}

	if !validators.ValidPhone(rawPhone) {
		return nil, httperr.Validation("invalid_phone", "Telefone inválido.")
	}
	phone := validators.NormalizePhone(rawPhone)

	// --------------------------------------------------
	// 2️⃣ Cliente existente
	// --------------------------------------------------
	existing, err := uc.repo.FindClientByPhone(ctx, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.Storage("find client by phone", err)
	}

	// --------------------------------------------------
	// 3️⃣ Criação
	// --------------------------------------------------
	now := time.Now().UTC()
	c := &models.Client{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.CreateClient(ctx, c); err != nil {
		if !domain.IsUniqueViolation(err, domain.ConstraintClientPhone) {
			return nil, httperr.Storage("create client", err)
		}

		// outra requisição criou o mesmo telefone entre a busca e o insert
		winner, lookupErr := uc.repo.FindClientByPhone(ctx, phone)
		if lookupErr != nil {
			return nil, httperr.Storage("find client after conflict", lookupErr)
		}
		return winner, nil
	}

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorPublic,
		Action:   "client_created",
		Entity:   "client",
		EntityID: c.ID,
	})

	return c, nil
}
