package draft

import (
	"time"

	"github.com/mealbridge/donor-cli/internal/listing"
)

// expirationLayout is the datetime-local layout carried by the form input.
const expirationLayout = "2006-01-02T15:04"

const defaultStatus = "Available"

// Profile is the locally cached donor profile used to prefill a draft.
type Profile struct {
	Name    string
	Address string
}

// Image is an unsent image blob attached to a draft. Replacing or discarding
// it drops the old blob so nothing keeps the bytes alive.
type Image struct {
	Name string
	Data []byte
}

// Draft is the in-progress creation form state. It is mutated field by field
// and consumed exactly once by a successful submission, or abandoned.
type Draft struct {
	Title               string
	Organization        string
	Location            string
	Quantity            int
	DietaryRestrictions string
	Description         string
	AvailabilityStatus  string
	Expiration          string // datetime-local layout
	Image               *Image
}

// New returns a draft prefilled from the cached profile when one exists, with
// a default expiration 24 hours out. A missing profile leaves the fields
// empty rather than failing.
func New(profile *Profile, now time.Time) Draft {
	d := Draft{
		Quantity:           1,
		AvailabilityStatus: defaultStatus,
		Expiration:         now.Add(24 * time.Hour).Format(expirationLayout),
	}
	if profile != nil {
		d.Organization = profile.Name
		d.Location = profile.Address
	}
	return d
}

// AddTag appends to the dietary-restriction string. Empty or already-present
// tags are dropped silently.
func (d *Draft) AddTag(tag string) {
	d.DietaryRestrictions = listing.AppendTag(d.DietaryRestrictions, tag)
}

// RemoveTag drops a tag and re-serializes the remainder.
func (d *Draft) RemoveTag(tag string) {
	d.DietaryRestrictions = listing.RemoveTag(d.DietaryRestrictions, tag)
}

// Tags is the derived tag view of the dietary-restriction string. Value
// receiver so it can be called on a draft snapshot.
func (d Draft) Tags() []string {
	return listing.ParseTags(d.DietaryRestrictions)
}

// AttachImage replaces any previously attached blob.
func (d *Draft) AttachImage(name string, data []byte) {
	d.Image = &Image{Name: name, Data: data}
}

// DiscardImage releases the attached blob.
func (d *Draft) DiscardImage() {
	d.Image = nil
}
