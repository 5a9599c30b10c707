package create_booking

import (
	"fmt"
	"strings"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotId is required", ErrInvalidInput)
	}

	hasUser := req.UserID != nil
	hasGuest := req.GuestEmail != nil
	if hasUser == hasGuest {
		return ErrInvalidRequester
	}

	if hasGuest {
		email := strings.TrimSpace(*req.GuestEmail)
		if email == "" || !strings.Contains(email, "@") {
			return fmt.Errorf("%w: invalid guest email", ErrInvalidInput)
		}
		if req.GuestName == nil || strings.TrimSpace(*req.GuestName) == "" {
			return fmt.Errorf("%w: guest name is required", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
