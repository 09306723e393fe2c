package workorder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
	wodomain "github.com/jhoicas/operaciones-api/internal/domain/workorder"
	"github.com/jhoicas/operaciones-api/pkg/logger"
)

// WorkOrderUseCase casos de uso de órdenes de trabajo.
type WorkOrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.WorkOrderRepository
	userRepo  repository.UserRepository
	pdf       PDFGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewWorkOrderUseCase construye el caso de uso. pdf puede ser nil si no se expone la descarga.
func NewWorkOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.WorkOrderRepository,
	userRepo repository.UserRepository,
	pdf PDFGenerator,
	log *logger.Logger,
) *WorkOrderUseCase {
	return &WorkOrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		pdf:       pdf,
		log:       log.Component("work_orders"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (año de numeración y fecha de salidas). Usado en tests.
func (uc *WorkOrderUseCase) WithClock(now func() time.Time) *WorkOrderUseCase {
	uc.now = now
	return uc
}

// List órdenes activas, más recientes primero. Estado y usuario (asignado o revisor) son opcionales
// y se combinan.
func (uc *WorkOrderUseCase) List(ctx context.Context, f entity.WorkOrderFilter) ([]dto.WorkOrderResponse, error) {
	if f.Status != "" && !wodomain.ValidStatus(f.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, f.Status)
	}
	orders, err := uc.orderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	users := map[string]*entity.User{}
	out := make([]dto.WorkOrderResponse, 0, len(orders))
	for _, o := range orders {
		if err := uc.hydrateUsers(ctx, o, users); err != nil {
			return nil, err
		}
		out = append(out, *toWorkOrderResponse(o))
	}
	return out, nil
}

// Get orden activa por ID con usuarios y líneas.
func (uc *WorkOrderUseCase) Get(ctx context.Context, id int64) (*dto.WorkOrderResponse, error) {
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWorkOrderResponse(o), nil
}

// Update modifica la cabecera. Cambiar de usuario valida que exista; el estado sólo debe ser uno
// conocido. Las líneas y salidas ya emitidas no se tocan.
func (uc *WorkOrderUseCase) Update(ctx context.Context, id int64, in dto.UpdateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.OrderDate != nil {
		if o.OrderDate, err = parseDate(*in.OrderDate); err != nil {
			return nil, err
		}
	}
	if in.UnitNumber != nil {
		o.UnitNumber = *in.UnitNumber
	}
	if in.Description != nil {
		o.Description = *in.Description
	}
	if in.Notes != nil {
		o.Notes = *in.Notes
	}
	if in.Status != nil {
		if !wodomain.ValidStatus(*in.Status) {
			return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, *in.Status)
		}
		o.Status = *in.Status
	}
	if in.AssignedUserID != nil && *in.AssignedUserID != o.AssignedUserID {
		if o.AssignedUser, err = uc.requireUser(ctx, *in.AssignedUserID, "asignado"); err != nil {
			return nil, err
		}
		o.AssignedUserID = *in.AssignedUserID
	}
	if in.ReviewerUserID != nil && *in.ReviewerUserID != o.ReviewerUserID {
		if o.ReviewerUser, err = uc.requireUser(ctx, *in.ReviewerUserID, "revisor"); err != nil {
			return nil, err
		}
		o.ReviewerUserID = *in.ReviewerUserID
	}
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	o.UpdatedAt = uc.now()
	return toWorkOrderResponse(o), nil
}

// UpdateStatus cambia sólo el estado.
func (uc *WorkOrderUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*dto.WorkOrderResponse, error) {
	resp, err := uc.Update(ctx, id, dto.UpdateWorkOrderRequest{Status: &status})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("orden", id).Str("estado", status).Msg("estado de orden actualizado")
	return resp, nil
}

// Remove baja lógica (activo = false). Las salidas generadas por la orden se conservan.
func (uc *WorkOrderUseCase) Remove(ctx context.Context, id int64) error {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil || !o.Active {
		return domain.ErrNotFound
	}
	if err := uc.orderRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("orden", id).Str("numero", o.Number).Msg("orden de trabajo eliminada")
	return nil
}

// Stats conteos por estado sobre órdenes activas.
func (uc *WorkOrderUseCase) Stats(ctx context.Context) (*dto.WorkOrderStatsResponse, error) {
	st, err := uc.orderRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.WorkOrderStatsResponse{
		Total:      st.Total,
		Pending:    st.Pending,
		InProgress: st.InProgress,
		Completed:  st.Completed,
		Cancelled:  st.Cancelled,
	}, nil
}

// DownloadPDF genera la hoja imprimible de la orden.
// Retorna los bytes del PDF y el nombre de archivo sugerido.
func (uc *WorkOrderUseCase) DownloadPDF(ctx context.Context, id int64) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado")
	}
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateWorkOrderPDF(ctx, o)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("orden_%s.pdf", o.Number), nil
}

func (uc *WorkOrderUseCase) load(ctx context.Context, id int64) (*entity.WorkOrder, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || !o.Active {
		return nil, domain.ErrNotFound
	}
	if err := uc.hydrateUsers(ctx, o, map[string]*entity.User{}); err != nil {
		return nil, err
	}
	return o, nil
}

// hydrateUsers carga asignado y revisor usando cache para no repetir consultas en listados.
// Un usuario borrado después de crear la orden queda como nil.
func (uc *WorkOrderUseCase) hydrateUsers(ctx context.Context, o *entity.WorkOrder, cache map[string]*entity.User) error {
	get := func(id string) (*entity.User, error) {
		if u, ok := cache[id]; ok {
			return u, nil
		}
		u, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		cache[id] = u
		return u, nil
	}
	var err error
	if o.AssignedUser, err = get(o.AssignedUserID); err != nil {
		return err
	}
	o.ReviewerUser, err = get(o.ReviewerUserID)
	return err
}

func (uc *WorkOrderUseCase) requireUser(ctx context.Context, id, rol string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("usuario %s %s: %w", rol, id, domain.ErrUserNotFound)
	}
	return u, nil
}

// parseDate acepta RFC3339 o AAAA-MM-DD.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: fecha_orden %q", domain.ErrInvalidInput, s)
}

func toWorkOrderResponse(o *entity.WorkOrder) *dto.WorkOrderResponse {
	lines := make([]dto.WorkOrderLineResponse, 0, len(o.Products))
	for _, p := range o.Products {
		lines = append(lines, dto.WorkOrderLineResponse{
			ID:          p.ID,
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			Unit:        p.Unit,
			UnitCost:    p.UnitCost,
			TotalCost:   p.TotalCost,
		})
	}
	return &dto.WorkOrderResponse{
		ID:             o.ID,
		Number:         o.Number,
		OrderDate:      o.OrderDate,
		UnitNumber:     o.UnitNumber,
		Description:    o.Description,
		Status:         o.Status,
		Notes:          o.Notes,
		AssignedUserID: o.AssignedUserID,
		ReviewerUserID: o.ReviewerUserID,
		AssignedUser:   toWorkOrderUser(o.AssignedUser),
		ReviewerUser:   toWorkOrderUser(o.ReviewerUser),
		Products:       lines,
		Total:          o.Total(),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toWorkOrderUser(u *entity.User) *dto.WorkOrderUser {
	if u == nil {
		return nil
	}
	return &dto.WorkOrderUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}
