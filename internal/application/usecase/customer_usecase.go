package usecase

import (
	"strings"
	"time"

	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	"github.com/tu-usuario/prestamos-pro/pkg/idgen"
)

// CustomerUseCase directorio de clientes: alta y consulta. El flujo de
// préstamos solo lee de aquí; un cliente nunca se modifica ni se borra.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	ids  idgen.Generator
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, ids idgen.Generator) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, ids: ids}
}

// Create registra un cliente nuevo en el directorio.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer := &entity.Customer{
		ID:        uc.ids.NewID(idgen.PrefixCustomer),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		CustomerID: c.ID,
		Name:       c.Name,
		CreatedAt:  c.CreatedAt,
	}
}
