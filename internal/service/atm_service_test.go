package service

import (
	"reflect"
	"testing"

	"github.com/kashala/atm-finder-go/internal/models"
)

var lubumbashiCenter = models.Coordinate{Latitude: -11.6609, Longitude: 27.4794}

func sampleATMs() []models.ATM {
	return []models.ATM{
		{ID: "bcdc_2", Name: "BCDC - Ruashi", Bank: "BCDC", Coordinate: models.Coordinate{Latitude: -11.6234, Longitude: 27.5123}, Services: []string{"Retrait", "Dépôt"}, IsOpen: true},
		{ID: "rawbank_1", Name: "Rawbank - Avenue Mobutu", Bank: "Rawbank", Coordinate: models.Coordinate{Latitude: -11.6647, Longitude: 27.4794}, Services: []string{"Retrait", "Consultation"}, IsOpen: true},
		{ID: "tmb_2", Name: "TMB - Annexe", Bank: "TMB", Coordinate: models.Coordinate{Latitude: -11.6789, Longitude: 27.4567}, Services: []string{"Retrait"}, IsOpen: false},
	}
}

func TestRankSortsAscending(t *testing.T) {
	ranked := Rank(lubumbashiCenter, sampleATMs())

	if len(ranked) != 3 {
		t.Fatalf("Rank returned %d ATMs, want 3", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].DistanceKm < ranked[i-1].DistanceKm {
			t.Errorf("ranking not non-decreasing at %d: %v > %v", i, ranked[i-1].DistanceKm, ranked[i].DistanceKm)
		}
	}
	if ranked[0].ID != "rawbank_1" {
		t.Errorf("nearest ATM = %s, want rawbank_1", ranked[0].ID)
	}
	for _, atm := range ranked {
		if atm.DistanceKm <= 0 {
			t.Errorf("ATM %s has no distance annotation", atm.ID)
		}
	}
}

func TestRankIdempotent(t *testing.T) {
	once := Rank(lubumbashiCenter, sampleATMs())
	twice := Rank(lubumbashiCenter, once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Rank(Rank(list)) != Rank(list)")
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	atms := sampleATMs()
	Rank(lubumbashiCenter, atms)

	if atms[0].ID != "bcdc_2" || atms[0].DistanceKm != 0 {
		t.Errorf("Rank mutated its input slice")
	}
}

func TestFilterByService(t *testing.T) {
	tests := []struct {
		service string
		wantIDs []string
	}{
		{"Dépôt", []string{"bcdc_2"}},
		{"retrait", []string{"bcdc_2", "rawbank_1", "tmb_2"}}, // case-insensitive
		{"Virement", nil},
	}

	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			got := filterByService(sampleATMs(), tt.service)
			var ids []string
			for _, atm := range got {
				ids = append(ids, atm.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("filterByService(%q) = %v, want %v", tt.service, ids, tt.wantIDs)
			}
		})
	}
}

func TestWithinRadiusCutsSortedList(t *testing.T) {
	ranked := Rank(lubumbashiCenter, sampleATMs())

	all := withinRadius(ranked, 100)
	if len(all) != 3 {
		t.Errorf("radius 100 km kept %d ATMs, want 3", len(all))
	}

	near := withinRadius(ranked, 1)
	for _, atm := range near {
		if atm.DistanceKm > 1 {
			t.Errorf("ATM %s at %v km survived a 1 km radius", atm.ID, atm.DistanceKm)
		}
	}
	if len(near) >= 3 {
		t.Errorf("radius 1 km kept every ATM")
	}
}

// Filtering then ranking must agree with ranking then filtering.
func TestFilterSortCommutes(t *testing.T) {
	filteredFirst := Rank(lubumbashiCenter, filterByService(sampleATMs(), "Retrait"))
	rankedFirst := filterByService(Rank(lubumbashiCenter, sampleATMs()), "Retrait")

	if !reflect.DeepEqual(filteredFirst, rankedFirst) {
		t.Errorf("filter/sort application order changed the result")
	}
}
