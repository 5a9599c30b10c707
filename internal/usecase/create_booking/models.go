package create_booking

// Request claims one seat on a slot. Exactly one of UserID and GuestEmail
// identifies the requester; guest bookings carry contact details.
type Request struct {
	SlotID int64

	UserID     *int64
	GuestName  *string
	GuestEmail *string
	GuestPhone *string

	Notes *string
}
