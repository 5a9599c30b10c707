package update_slot

import (
	"context"

	"github.com/memberhq/SMP-AppointmentService/internal/service/slots/models"
)

type SlotService interface {
	Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
