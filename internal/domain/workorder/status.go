package workorder

import "github.com/jhoicas/operaciones-api/internal/domain/entity"

var statuses = map[string]struct{}{
	entity.WorkOrderPending:    {},
	entity.WorkOrderInProgress: {},
	entity.WorkOrderCompleted:  {},
	entity.WorkOrderCancelled:  {},
}

// ValidStatus indica si s es un estado conocido. Cualquier estado válido puede asignarse desde cualquier otro.
func ValidStatus(s string) bool {
	_, ok := statuses[s]
	return ok
}
