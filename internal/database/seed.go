package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/kashala/atm-finder-go/internal/models"
)

var bankLogos = map[string]string{
	"Rawbank":     "https://images.pexels.com/photos/259027/pexels-photo-259027.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&dpr=2",
	"Equity Bank": "https://images.pexels.com/photos/164527/pexels-photo-164527.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&dpr=2",
	"BCDC":        "https://images.pexels.com/photos/534216/pexels-photo-534216.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&dpr=2",
	"TMB":         "https://images.pexels.com/photos/1602726/pexels-photo-1602726.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&dpr=2",
	"FBN Bank":    "https://images.pexels.com/photos/3943716/pexels-photo-3943716.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&dpr=2",
	"UBA":         "https://images.pexels.com/photos/3943716/pexels-photo-3943716.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&dpr=2",
	"Access Bank": "https://images.pexels.com/photos/3943716/pexels-photo-3943716.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&dpr=2",
	"Sofibanque":  "https://images.pexels.com/photos/3943716/pexels-photo-3943716.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&dpr=2",
}

// BankLogo returns the default logo URL for a bank.
func BankLogo(bank string) string {
	if url, ok := bankLogos[bank]; ok {
		return url
	}
	return bankLogos["Rawbank"]
}

// LubumbashiATMs is the bundled ATM fixture set for Lubumbashi.
var LubumbashiATMs = []models.ATM{
	{ID: "rawbank_1", Name: "Rawbank - Avenue Mobutu", Bank: "Rawbank", Coordinate: models.Coordinate{Latitude: -11.6647, Longitude: 27.4794}, Address: "Avenue Mobutu, Lubumbashi", Services: []string{"Retrait", "Dépôt", "Consultation"}, IsOpen: true, OpeningHours: "24h/24", Rating: 4.2},
	{ID: "rawbank_2", Name: "Rawbank - Centre Ville", Bank: "Rawbank", Coordinate: models.Coordinate{Latitude: -11.6598, Longitude: 27.4731}, Address: "Centre Ville, Lubumbashi", Services: []string{"Retrait", "Consultation"}, IsOpen: true, OpeningHours: "06:00 - 22:00", Rating: 4.0},
	{ID: "rawbank_3", Name: "Rawbank - Katuba", Bank: "Rawbank", Coordinate: models.Coordinate{Latitude: -11.6892, Longitude: 27.4523}, Address: "Commune de Katuba, Lubumbashi", Services: []string{"Retrait", "Dépôt", "Consultation", "Virement"}, IsOpen: true, OpeningHours: "24h/24", Rating: 4.5},
	{ID: "equity_1", Name: "Equity Bank - Avenue Lumumba", Bank: "Equity Bank", Coordinate: models.Coordinate{Latitude: -11.6612, Longitude: 27.4756}, Address: "Avenue Patrice Lumumba, Lubumbashi", Services: []string{"Retrait", "Consultation"}, IsOpen: true, OpeningHours: "24h/24", Rating: 4.1},
	{ID: "equity_2", Name: "Equity Bank - Kampemba", Bank: "Equity Bank", Coordinate: models.Coordinate{Latitude: -11.6445, Longitude: 27.4889}, Address: "Commune de Kampemba, Lubumbashi", Services: []string{"Retrait", "Dépôt", "Consultation"}, IsOpen: true, OpeningHours: "06:00 - 22:00", Rating: 3.9},
	{ID: "bcdc_1", Name: "BCDC - Avenue Sendwe", Bank: "BCDC", Coordinate: models.Coordinate{Latitude: -11.6578, Longitude: 27.4812}, Address: "Avenue Jason Sendwe, Lubumbashi", Services: []string{"Retrait", "Consultation", "Virement"}, IsOpen: true, OpeningHours: "24h/24", Rating: 4.3},
	{ID: "bcdc_2", Name: "BCDC - Ruashi", Bank: "BCDC", Coordinate: models.Coordinate{Latitude: -11.6234, Longitude: 27.5123}, Address: "Commune de Ruashi, Lubumbashi", Services: []string{"Retrait", "Dépôt", "Consultation"}, IsOpen: true, OpeningHours: "06:00 - 20:00", Rating: 4.0},
	{ID: "tmb_1", Name: "TMB - Avenue Kasavubu", Bank: "TMB", Coordinate: models.Coordinate{Latitude: -11.6634, Longitude: 27.4723}, Address: "Avenue Kasavubu, Lubumbashi", Services: []string{"Retrait", "Consultation"}, IsOpen: true, OpeningHours: "24h/24", Rating: 3.8},
	{ID: "tmb_2", Name: "TMB - Annexe", Bank: "TMB", Coordinate: models.Coordinate{Latitude: -11.6789, Longitude: 27.4567}, Address: "Commune de l'Annexe, Lubumbashi", Services: []string{"Retrait", "Dépôt", "Consultation"}, IsOpen: false, OpeningHours: "07:00 - 19:00", Rating: 3.7},
	{ID: "fbn_1", Name: "FBN Bank - Gécamines", Bank: "FBN Bank", Coordinate: models.Coordinate{Latitude: -11.6523, Longitude: 27.4698}, Address: "Quartier Gécamines, Lubumbashi", Services: []string{"Retrait", "Consultation"}, IsOpen: true, OpeningHours: "24h/24", Rating: 4.1},
	{ID: "uba_1", Name: "UBA - Kenya", Bank: "UBA", Coordinate: models.Coordinate{Latitude: -11.6712, Longitude: 27.4834}, Address: "Commune de Kenya, Lubumbashi", Services: []string{"Retrait", "Dépôt", "Consultation"}, IsOpen: true, OpeningHours: "06:00 - 22:00", Rating: 3.9},
	{ID: "access_1", Name: "Access Bank - Lubumbashi Plaza", Bank: "Access Bank", Coordinate: models.Coordinate{Latitude: -11.6567, Longitude: 27.4789}, Address: "Lubumbashi Plaza, Centre Ville", Services: []string{"Retrait", "Consultation", "Virement"}, IsOpen: true, OpeningHours: "24h/24", Rating: 4.2},
	{ID: "sofi_1", Name: "Sofibanque - Makomeno", Bank: "Sofibanque", Coordinate: models.Coordinate{Latitude: -11.6823, Longitude: 27.4612}, Address: "Quartier Makomeno, Lubumbashi", Services: []string{"Retrait", "Consultation"}, IsOpen: true, OpeningHours: "07:00 - 21:00", Rating: 3.6},
	{ID: "rawbank_4", Name: "Rawbank - Aéroport", Bank: "Rawbank", Coordinate: models.Coordinate{Latitude: -11.5912, Longitude: 27.5308}, Address: "Aéroport International de Lubumbashi", Services: []string{"Retrait", "Consultation"}, IsOpen: true, OpeningHours: "24h/24", Rating: 4.4},
	{ID: "equity_3", Name: "Equity Bank - Université de Lubumbashi", Bank: "Equity Bank", Coordinate: models.Coordinate{Latitude: -11.6156, Longitude: 27.4723}, Address: "Campus Universitaire, Lubumbashi", Services: []string{"Retrait", "Consultation"}, IsOpen: true, OpeningHours: "06:00 - 20:00", Rating: 4.0},
	{ID: "bcdc_3", Name: "BCDC - Marché Central", Bank: "BCDC", Coordinate: models.Coordinate{Latitude: -11.6623, Longitude: 27.4756}, Address: "Marché Central, Lubumbashi", Services: []string{"Retrait", "Dépôt", "Consultation"}, IsOpen: true, OpeningHours: "05:00 - 23:00", Rating: 3.8},
}

// Seed inserts the bundled fixtures, replacing rows that already exist.
func Seed(db *sql.DB) error {
	return Transaction(db, func(tx *sql.Tx) error {
		for _, atm := range LubumbashiATMs {
			services, err := json.Marshal(atm.Services)
			if err != nil {
				return fmt.Errorf("failed to marshal services for %s: %w", atm.ID, err)
			}

			logo := atm.Logo
			if logo == "" {
				logo = BankLogo(atm.Bank)
			}

			_, err = tx.Exec(`INSERT OR REPLACE INTO atms
				(id, name, bank, lat, lon, address, services, is_open, opening_hours, rating, logo_url)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				atm.ID, atm.Name, atm.Bank, atm.Coordinate.Latitude, atm.Coordinate.Longitude,
				atm.Address, string(services), atm.IsOpen, atm.OpeningHours, atm.Rating, logo)
			if err != nil {
				return fmt.Errorf("failed to seed atm %s: %w", atm.ID, err)
			}
		}

		log.Printf("Seeded %d ATMs", len(LubumbashiATMs))
		return nil
	})
}
