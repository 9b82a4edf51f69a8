// Package maprender turns a ride route into a standalone map artifact on disk.
package maprender

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/taxi-ledger/internal/models"
)

// Renderer writes a map for a ride and returns the artifact path.
type Renderer interface {
	RenderRoute(ctx context.Context, route Route, rideID int) (string, error)
}

type Stop struct {
	Name string
	Loc  models.Coord
}

type Route struct {
	From Stop
	To   Stop
}

// Viewpoint is the fixed centre and zoom every map opens on.
type Viewpoint struct {
	Center models.Coord
	Zoom   int
}

// LibyaViewpoint frames the whole country.
var LibyaViewpoint = Viewpoint{Center: models.Coord{Lat: 26.3351, Lon: 17.2283}, Zoom: 6}

// ArtifactName is the file name used for a ride's map.
func ArtifactName(rideID int, ext string) string {
	return fmt.Sprintf("ride_%d_map.%s", rideID, ext)
}

func writeArtifact(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create map dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write map %s: %w", name, err)
	}
	return path, nil
}
