package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strconv"

	"github.com/dmitrijs2005/attendance/internal/client/models"
)

// Multipart field names and the fixed photo part metadata.
const (
	ImageField     = "image"
	LatitudeField  = "latitude"
	LongitudeField = "longitude"
	PhotoFilename  = "photo.jpg"
	PhotoMediaType = "image/jpeg"
)

// Paging defaults applied when the caller passes non-positive values.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// CheckIn uploads the photo at imagePath. Location is optional.
func (c *HTTPClient) CheckIn(ctx context.Context, imagePath string, loc *models.Coordinates) (*models.AttendanceRecord, error) {
	return c.submit(ctx, "/attendance/check-in", imagePath, loc)
}

// CheckOut uploads the photo at imagePath. Location is mandatory.
func (c *HTTPClient) CheckOut(ctx context.Context, imagePath string, loc *models.Coordinates) (*models.AttendanceRecord, error) {
	if loc == nil {
		return nil, ErrLocationRequired
	}
	return c.submit(ctx, "/attendance/check-out", imagePath, loc)
}

func (c *HTTPClient) submit(ctx context.Context, path, imagePath string, loc *models.Coordinates) (*models.AttendanceRecord, error) {
	body, contentType, err := buildAttendanceForm(imagePath, loc)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	var rec models.AttendanceRecord
	if err := c.do(req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func buildAttendanceForm(imagePath string, loc *models.Coordinates) (*bytes.Buffer, string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, ImageField, PhotoFilename))
	h.Set("Content-Type", PhotoMediaType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read photo: %w", err)
	}

	if loc != nil {
		if err := w.WriteField(LatitudeField, FormatCoordinate(loc.Latitude)); err != nil {
			return nil, "", fmt.Errorf("write latitude: %w", err)
		}
		if err := w.WriteField(LongitudeField, FormatCoordinate(loc.Longitude)); err != nil {
			return nil, "", fmt.Errorf("write longitude: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// FormatCoordinate renders v as the shortest decimal that round-trips.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Records fetches one page of the caller's history.
func (c *HTTPClient) Records(ctx context.Context, page, perPage int) (*models.RecordsPage, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var out models.RecordsPage
	if err := c.doJSON(ctx, http.MethodGet, "/attendance/records", q, nil, &out); err != nil {
		return nil, err
	}
	out.Normalize()
	return &out, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.AttendanceStats, error) {
	var out models.AttendanceStats
	if err := c.doJSON(ctx, http.MethodGet, "/attendance/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.TirednessDistribution == nil {
		out.TirednessDistribution = map[string]int{}
	}
	return &out, nil
}
