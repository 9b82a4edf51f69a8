package maprender

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"googlemaps.github.io/maps"

	"github.com/example/taxi-ledger/internal/models"
)

// StaticMapClient is the subset of *maps.Client the static renderer needs.
type StaticMapClient interface {
	StaticMap(ctx context.Context, r *maps.StaticMapRequest) (image.Image, error)
}

// StaticMapRenderer fetches a PNG from the Google Static Maps API.
type StaticMapRenderer struct {
	client StaticMapClient
	dir    string
	view   Viewpoint
	size   string
}

func NewStaticMapRenderer(client StaticMapClient, dir string, view Viewpoint) *StaticMapRenderer {
	return &StaticMapRenderer{client: client, dir: dir, view: view, size: "800x600"}
}

// NewGoogleStaticMapRenderer builds a renderer backed by a real maps client.
func NewGoogleStaticMapRenderer(apiKey, dir string, view Viewpoint) (*StaticMapRenderer, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return NewStaticMapRenderer(client, dir, view), nil
}

func (s *StaticMapRenderer) RenderRoute(ctx context.Context, route Route, rideID int) (string, error) {
	from, to := latLng(route.From.Loc), latLng(route.To.Loc)
	req := &maps.StaticMapRequest{
		Center: fmt.Sprintf("%.4f,%.4f", s.view.Center.Lat, s.view.Center.Lon),
		Zoom:   s.view.Zoom,
		Size:   s.size,
		Markers: []maps.Marker{
			{Color: "green", Label: "S", Location: []maps.LatLng{from}},
			{Color: "red", Label: "E", Location: []maps.LatLng{to}},
		},
		Paths: []maps.Path{
			{Color: "blue", Weight: 3, Location: []maps.LatLng{from, to}},
		},
	}
	img, err := s.client.StaticMap(ctx, req)
	if err != nil {
		return "", fmt.Errorf("static map api error: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode static map: %w", err)
	}
	return writeArtifact(s.dir, ArtifactName(rideID, "png"), buf.Bytes())
}

func latLng(c models.Coord) maps.LatLng {
	return maps.LatLng{Lat: c.Lat, Lng: c.Lon}
}
