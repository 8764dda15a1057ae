package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// SQLSTATE unique_violation
const pgUniqueViolation = "23505"

var knownConstraints = []string{
	domain.ConstraintScheduledSlot,
	domain.ConstraintClientPhone,
}

// classifyPG traduz erros do gorm/pgx para os sinais do domínio. O resto
// volta embrulhado com a operação.
func classifyPG(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &domain.UniqueViolation{Constraint: pgErr.ConstraintName, Err: err}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func classifyMongo(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		// o nome do índice vem na mensagem: "... index: uq_clients_phone dup key: ..."
		msg := err.Error()
		for _, name := range knownConstraints {
			if strings.Contains(msg, name) {
				return &domain.UniqueViolation{Constraint: name, Err: err}
			}
		}
		return &domain.UniqueViolation{Err: err}
	}

	return fmt.Errorf("%s: %w", op, err)
}
