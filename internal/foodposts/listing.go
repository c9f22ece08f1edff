package foodposts

// Listing is the wire shape of a food post exactly as the server returns it.
// It is immutable once received; the enriched view model lives in the listing
// package.
type Listing struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	OrganizationName    string   `json:"organizationName"`
	Location            string   `json:"location"`
	Description         string   `json:"description"`
	Quantity            int      `json:"quantity"`
	DietaryRestrictions string   `json:"dietaryRestrictions"`
	AvailabilityStatus  string   `json:"availabilityStatus"`
	ExpirationDate      string   `json:"expirationDate"`
	Images              []string `json:"images"`
	UserID              string   `json:"userId"`
}

// CreatePayload is a fully encoded multipart request body for Create. The
// draft package produces it; the client only transports it.
type CreatePayload struct {
	ContentType string
	Body        []byte
}
