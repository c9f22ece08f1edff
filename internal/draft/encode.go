package draft

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/mealbridge/donor-cli/internal/foodposts"
)

// imageField is the multipart field name the API expects for the upload.
const imageField = "images"

// ValidationError is a local precondition failure. It never reaches the
// network and changes no stored state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Encode converts the draft into the multipart payload Create expects. The
// image is mandatory, quantity must be at least 1, and the expiration
// converts from the form's local layout to RFC 3339 UTC.
func (d *Draft) Encode() (*foodposts.CreatePayload, error) {
	if d.Image == nil || len(d.Image.Data) == 0 {
		return nil, &ValidationError{Field: "image", Reason: "an image is required to create a listing"}
	}
	if d.Quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	expiration, err := time.ParseInLocation(expirationLayout, d.Expiration, time.Local)
	if err != nil {
		return nil, &ValidationError{Field: "expirationDate", Reason: "not a valid date"}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"title", d.Title},
		{"quantity", strconv.Itoa(d.Quantity)},
		{"description", d.Description},
		{"dietaryRestrictions", d.DietaryRestrictions},
		{"location", d.Location},
		{"availabilityStatus", d.AvailabilityStatus},
		{"expirationDate", expiration.UTC().Format(time.RFC3339)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	filename := d.Image.Name
	if filename == "" {
		filename = "image"
	}
	part, err := w.CreateFormFile(imageField, filename)
	if err != nil {
		return nil, fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(d.Image.Data); err != nil {
		return nil, fmt.Errorf("write image part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	return &foodposts.CreatePayload{ContentType: w.FormDataContentType(), Body: buf.Bytes()}, nil
}
