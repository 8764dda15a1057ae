package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucClient "github.com/BruksfildServices01/salon-scheduler/internal/usecase/client"
)

type BookInput struct {
	Name        string
	Phone       string
	ServiceType string
	Date        string
	Time        string
}

// Book é o fluxo público: resolve o cliente pelo telefone e cria o
// agendamento. São dois commits independentes; se o segundo perder o slot
// o cliente continua existindo, o que é inofensivo.
type Book struct {
	resolve *ucClient.ResolveOrCreate
	create  *Create
}

func NewBook(
	resolve *ucClient.ResolveOrCreate,
	create *Create,
) *Book {
	return &Book{
		resolve: resolve,
		create:  create,
	}
}

func (uc *Book) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, *models.Client, error) {

	// valida o agendamento antes de criar cliente
	service, slot, err := uc.create.validate(in.ServiceType, in.Date, in.Time)
	if err != nil {
		return nil, nil, err
	}

	client, err := uc.resolve.Execute(ctx, in.Name, in.Phone)
	if err != nil {
		return nil, nil, err
	}

	ap, err := uc.create.insert(ctx, client.ID, service, slot)
	if err != nil {
		return nil, client, err
	}
	return ap, client, nil
}
