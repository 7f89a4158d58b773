package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"travelnest/internal/domain"
)

func TestDecideTransition(t *testing.T) {
	hostID := uuid.New()
	guestID := uuid.New()
	strangerID := uuid.New()

	mk := func(status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{
			ID:      uuid.New(),
			GuestID: guestID,
			Status:  status,
			Listing: &domain.Listing{ID: uuid.New(), HostID: hostID},
		}
	}

	cases := []struct {
		name   string
		actor  uuid.UUID
		from   domain.BookingStatus
		target domain.BookingStatus
		want   error
	}{
		{"host confirms pending", hostID, domain.BookingPending, domain.BookingConfirmed, nil},
		{"host cancels pending", hostID, domain.BookingPending, domain.BookingCancelled, nil},
		{"host cancels confirmed", hostID, domain.BookingConfirmed, domain.BookingCancelled, nil},
		{"host completes confirmed", hostID, domain.BookingConfirmed, domain.BookingCompleted, nil},
		{"host completes pending", hostID, domain.BookingPending, domain.BookingCompleted, ErrInvalidTransition},
		{"guest cancels pending", guestID, domain.BookingPending, domain.BookingCancelled, nil},
		{"guest cancels confirmed", guestID, domain.BookingConfirmed, domain.BookingCancelled, nil},
		{"guest confirms pending", guestID, domain.BookingPending, domain.BookingConfirmed, ErrForbidden},
		{"guest completes confirmed", guestID, domain.BookingConfirmed, domain.BookingCompleted, ErrForbidden},
		{"stranger cancels pending", strangerID, domain.BookingPending, domain.BookingCancelled, ErrForbidden},
		{"cancelled is frozen", hostID, domain.BookingCancelled, domain.BookingConfirmed, ErrInvalidTransition},
		{"completed is frozen", hostID, domain.BookingCompleted, domain.BookingCancelled, ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := DecideTransition(tc.actor, mk(tc.from), tc.target)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestDecideTransition_HostWithoutPreloadedListing(t *testing.T) {
	// Without the listing join the host cannot be recognized and must be
	// treated as a stranger rather than silently allowed.
	b := &domain.Booking{ID: uuid.New(), GuestID: uuid.New(), Status: domain.BookingPending}
	err := DecideTransition(uuid.New(), b, domain.BookingConfirmed)
	assert.ErrorIs(t, err, ErrForbidden)
}
