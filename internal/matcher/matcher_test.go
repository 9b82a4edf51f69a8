package matcher

import (
	"testing"

	"github.com/example/taxi-ledger/internal/models"
)

func TestFirstFitSkipsUnavailable(t *testing.T) {
	drivers := []models.Driver{
		{ID: 2, Name: "A", Available: false},
		{ID: 3, Name: "B", Available: true},
		{ID: 4, Name: "C", Available: true},
	}
	d, ok := FirstFit{}.Select(drivers)
	if !ok {
		t.Fatal("no match")
	}
	if d.ID != 3 {
		t.Fatalf("expected driver 3, got %d", d.ID)
	}
}

func TestFirstFitNoneAvailable(t *testing.T) {
	cases := [][]models.Driver{
		nil,
		{{ID: 1, Available: false}, {ID: 2, Available: false}},
	}
	for _, drivers := range cases {
		if _, ok := (FirstFit{}).Select(drivers); ok {
			t.Fatalf("expected no match for %+v", drivers)
		}
	}
}
