package maprender

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

var pageTmpl = template.Must(template.New("route").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Ride #{{.RideID}}: {{.Route.From.Name}} to {{.Route.To.Name}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map("map").setView([{{.View.Center.Lat}}, {{.View.Center.Lon}}], {{.View.Zoom}});
L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
var start = [{{.Route.From.Loc.Lat}}, {{.Route.From.Loc.Lon}}];
var end = [{{.Route.To.Loc.Lat}}, {{.Route.To.Loc.Lon}}];
L.circleMarker(start, {color: "green", radius: 9, fillOpacity: 0.9}).addTo(map).bindPopup({{printf "Start: %s" .Route.From.Name}});
L.circleMarker(end, {color: "red", radius: 9, fillOpacity: 0.9}).addTo(map).bindPopup({{printf "End: %s" .Route.To.Name}});
L.polyline([start, end], {color: "blue", weight: 2.5, opacity: 0.8}).addTo(map);
</script>
</body>
</html>
`))

// HTMLRenderer writes a Leaflet page with a start marker, an end marker and a
// straight line between them.
type HTMLRenderer struct {
	Dir  string
	View Viewpoint
}

func NewHTMLRenderer(dir string, view Viewpoint) *HTMLRenderer {
	return &HTMLRenderer{Dir: dir, View: view}
}

func (h *HTMLRenderer) RenderRoute(ctx context.Context, route Route, rideID int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, struct {
		RideID int
		Route  Route
		View   Viewpoint
	}{rideID, route, h.View})
	if err != nil {
		return "", fmt.Errorf("render map page: %w", err)
	}
	return writeArtifact(h.Dir, ArtifactName(rideID, "html"), buf.Bytes())
}
