package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type BulkResult struct {
	ID        string `json:"id"`
	OK        bool   `json:"ok"`
	Status    string `json:"status,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// BulkTransition aplica a mesma transição a vários agendamentos. Cada id é
// independente: a falha de um não desfaz os outros. Uma falha de storage
// interrompe o lote; o resultado parcial volta junto com o erro, com o id
// que falhou marcado storage_error e os seguintes not_processed.
type BulkTransition struct {
	transition *TransitionStatus
}

func NewBulkTransition(transition *TransitionStatus) *BulkTransition {
	return &BulkTransition{transition: transition}
}

func (uc *BulkTransition) Execute(
	ctx context.Context,
	ids []string,
	rawStatus string,
) ([]BulkResult, error) {

	if len(ids) == 0 {
		return nil, httperr.Validation("empty_ids", "Informe ao menos um agendamento.")
	}

	next, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	results := make([]BulkResult, 0, len(ids))
	for i, id := range ids {
		ap, err := uc.transition.apply(ctx, id, "", next)
		if err != nil {
			var be httperr.BusinessError
			if !errors.As(err, &be) {
				// storage fora do ar: não adianta seguir
				results = append(results, BulkResult{ID: id, ErrorCode: "storage_error"})
				for _, rest := range ids[i+1:] {
					results = append(results, BulkResult{ID: rest, ErrorCode: "not_processed"})
				}
				return results, err
			}
			results = append(results, BulkResult{ID: id, ErrorCode: be.Code})
			continue
		}
		results = append(results, BulkResult{ID: id, OK: true, Status: ap.Status})
	}
	return results, nil
}
