package listing

import (
	"time"

	"github.com/mealbridge/donor-cli/internal/foodposts"
)

// View is the render-ready form of a listing: the wire fields plus derived
// tags, remaining hours and the primary image. Decoding the same record at a
// later instant yields identical tags, status and primary image and a
// smaller-or-equal DurationHours.
type View struct {
	ID                  string
	Title               string
	Organization        string
	Location            string
	Description         string
	Quantity            int
	DietaryRestrictions string
	Status              string
	ExpirationDate      string
	Images              []string
	UserID              string

	Tags          []string
	DurationHours int
	// ReservationCount has no wire source yet; it stays zero until a
	// reservations collaborator exists.
	ReservationCount int
	PrimaryImage     string
}

// Decode derives the view model from a wire record and the evaluation
// timestamp. It is total: a dietary-restriction string without commas is one
// literal tag, and an unparsable expiration counts as already expired.
func Decode(l foodposts.Listing, now time.Time) View {
	v := View{
		ID:                  l.ID,
		Title:               l.Title,
		Organization:        l.OrganizationName,
		Location:            l.Location,
		Description:         l.Description,
		Quantity:            l.Quantity,
		DietaryRestrictions: l.DietaryRestrictions,
		Status:              l.AvailabilityStatus,
		ExpirationDate:      l.ExpirationDate,
		Images:              l.Images,
		UserID:              l.UserID,
		Tags:                ParseTags(l.DietaryRestrictions),
		DurationHours:       durationHours(l.ExpirationDate, now),
	}
	if len(l.Images) > 0 {
		v.PrimaryImage = l.Images[0]
	}
	return v
}

// durationHours is the ceiling of the time left until expiration, floored at
// zero so an expired listing reads "0 hours remaining" rather than a negative.
func durationHours(expiration string, now time.Time) int {
	t, err := time.Parse(time.RFC3339, expiration)
	if err != nil {
		return 0
	}
	remaining := t.Sub(now)
	if remaining <= 0 {
		return 0
	}
	hours := int(remaining / time.Hour)
	if remaining%time.Hour != 0 {
		hours++
	}
	return hours
}
