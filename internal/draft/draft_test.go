package draft

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var mountTime = time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)

func TestNew_DefaultsAndProfilePrefill(t *testing.T) {
	d := New(&Profile{Name: "City Bakery", Address: "12 Mill Road"}, mountTime)

	require.Equal(t, "City Bakery", d.Organization)
	require.Equal(t, "12 Mill Road", d.Location)
	require.Equal(t, "Available", d.AvailabilityStatus)
	require.Equal(t, 1, d.Quantity)
	require.Equal(t, mountTime.Add(24*time.Hour).Format(expirationLayout), d.Expiration)
}

func TestNew_NoProfileLeavesFieldsEmpty(t *testing.T) {
	d := New(nil, mountTime)

	require.Empty(t, d.Organization)
	require.Empty(t, d.Location)
	require.Equal(t, "Available", d.AvailabilityStatus)
}

func TestDraft_TagAccumulator(t *testing.T) {
	d := New(nil, mountTime)

	d.AddTag("Vegan")
	d.AddTag("Gluten-Free")
	require.Equal(t, "Vegan, Gluten-Free", d.DietaryRestrictions)
	require.Equal(t, []string{"Vegan", "Gluten-Free"}, d.Tags())

	d.AddTag("Vegan")
	require.Equal(t, []string{"Vegan", "Gluten-Free"}, d.Tags(), "duplicate add must be a no-op")

	d.AddTag("")
	require.Equal(t, []string{"Vegan", "Gluten-Free"}, d.Tags(), "empty add must be a no-op")

	d.RemoveTag("Vegan")
	require.Equal(t, "Gluten-Free", d.DietaryRestrictions)
}

func TestDraft_AttachImageReplacesBlob(t *testing.T) {
	d := New(nil, mountTime)

	d.AttachImage("first.jpg", []byte("aaa"))
	d.AttachImage("second.jpg", []byte("bbb"))
	require.Equal(t, "second.jpg", d.Image.Name)
	require.Equal(t, []byte("bbb"), d.Image.Data)

	d.DiscardImage()
	require.Nil(t, d.Image)
}

func TestEncode_MissingImageIsValidationError(t *testing.T) {
	d := New(nil, mountTime)
	d.Title = "Bread"

	payload, err := d.Encode()
	require.Nil(t, payload)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, "image", validation.Field)
}

func TestEncode_NonPositiveQuantityIsValidationError(t *testing.T) {
	d := New(nil, mountTime)
	d.AttachImage("a.jpg", []byte("x"))
	d.Quantity = 0

	_, err := d.Encode()

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, "quantity", validation.Field)
}

func TestEncode_UnparsableExpirationIsValidationError(t *testing.T) {
	d := New(nil, mountTime)
	d.AttachImage("a.jpg", []byte("x"))
	d.Expiration = "next thursday"

	_, err := d.Encode()

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, "expirationDate", validation.Field)
}

func TestEncode_ProducesMultipartFields(t *testing.T) {
	d := New(&Profile{Name: "City Bakery", Address: "12 Mill Road"}, mountTime)
	d.Title = "Day-old bread"
	d.Quantity = 8
	d.Description = "Eight loaves, baked yesterday."
	d.AddTag("Vegan")
	d.AddTag("Nut-Free")
	d.AttachImage("bread.jpg", []byte("jpegbytes"))

	payload, err := d.Encode()
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(payload.ContentType)
	require.NoError(t, err)
	reader := multipart.NewReader(strings.NewReader(string(payload.Body)), params["boundary"])

	fields := map[string]string{}
	var fileName string
	var fileData []byte
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			require.Equal(t, "images", part.FormName())
			fileName = part.FileName()
			fileData = data
			continue
		}
		fields[part.FormName()] = string(data)
	}

	require.Equal(t, "Day-old bread", fields["title"])
	require.Equal(t, "8", fields["quantity"])
	require.Equal(t, "Eight loaves, baked yesterday.", fields["description"])
	require.Equal(t, "Vegan, Nut-Free", fields["dietaryRestrictions"])
	require.Equal(t, "12 Mill Road", fields["location"])
	require.Equal(t, "Available", fields["availabilityStatus"])
	require.Equal(t, "bread.jpg", fileName)
	require.Equal(t, []byte("jpegbytes"), fileData)

	wantExpiration, err := time.ParseInLocation(expirationLayout, d.Expiration, time.Local)
	require.NoError(t, err)
	require.Equal(t, wantExpiration.UTC().Format(time.RFC3339), fields["expirationDate"])
}
