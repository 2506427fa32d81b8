package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/kashala/atm-finder-go/internal/models"
	"github.com/olivere/elastic/v7"
)

const mapping = `{
	"mappings": {
		"properties": {
			"name":     { "type": "text" },
			"bank":     { "type": "keyword" },
			"address":  { "type": "text" },
			"services": { "type": "keyword" },
			"is_open":  { "type": "boolean" },
			"rating":   { "type": "float" },
			"location": { "type": "geo_point" }
		}
	}
}`

type atmDoc struct {
	Name         string           `json:"name"`
	Bank         string           `json:"bank"`
	Address      string           `json:"address"`
	Services     []string         `json:"services"`
	IsOpen       bool             `json:"is_open"`
	OpeningHours string           `json:"opening_hours"`
	Rating       float64          `json:"rating"`
	Logo         string           `json:"logo"`
	Location     elastic.GeoPoint `json:"location"`
}

// Store is an Elasticsearch-backed nearby-search index over ATM records.
type Store struct {
	client *elastic.Client
	index  string
}

// NewStore connects to Elasticsearch and makes sure the index exists with
// a geo_point mapping.
func NewStore(url, index string) (*Store, error) {
	client, err := elastic.NewClient(elastic.SetURL(url), elastic.SetSniff(false))
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	s := &Store{client: client, index: index}
	if err := s.ensureIndex(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndex(ctx context.Context) error {
	exists, err := s.client.IndexExists(s.index).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	if exists {
		return nil
	}

	created, err := s.client.CreateIndex(s.index).BodyString(mapping).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", s.index, err)
	}
	if !created.Acknowledged {
		log.Println("CreateIndex was not acknowledged. Check that timeout value is correct.")
	}
	return nil
}

// IndexATMs bulk-indexes the given ATM records, keyed by ATM id.
func (s *Store) IndexATMs(ctx context.Context, atms []models.ATM) error {
	if len(atms) == 0 {
		return nil
	}

	bulk := s.client.Bulk()
	for _, atm := range atms {
		doc := atmDoc{
			Name:         atm.Name,
			Bank:         atm.Bank,
			Address:      atm.Address,
			Services:     atm.Services,
			IsOpen:       atm.IsOpen,
			OpeningHours: atm.OpeningHours,
			Rating:       atm.Rating,
			Logo:         atm.Logo,
			Location:     elastic.GeoPoint{Lat: atm.Coordinate.Latitude, Lon: atm.Coordinate.Longitude},
		}
		bulk = bulk.Add(elastic.NewBulkIndexRequest().Index(s.index).Id(atm.ID).Doc(doc))
	}

	resp, err := bulk.Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}
	for _, item := range resp.Items {
		for _, op := range item {
			if op.Error != nil {
				log.Printf("Failed to index document %s: %s", op.Id, op.Error.Reason)
			}
		}
	}
	return nil
}

// Nearby returns ATMs around the filter's center, closest first, using a
// geo_distance filter and sort.
func (s *Store) Nearby(ctx context.Context, filter models.NearbyFilter) ([]models.ATM, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := elastic.NewBoolQuery()
	if filter.RadiusKm > 0 {
		query = query.Filter(elastic.NewGeoDistanceQuery("location").
			Lat(filter.Lat).
			Lon(filter.Lon).
			Distance(fmt.Sprintf("%fkm", filter.RadiusKm)))
	}
	if filter.Service != "" {
		query = query.Filter(elastic.NewTermQuery("services", filter.Service))
	}

	res, err := s.client.Search().
		Index(s.index).
		Query(query).
		SortBy(elastic.NewGeoDistanceSort("location").
			Point(filter.Lat, filter.Lon).
			Asc().
			Unit("km").
			DistanceType("arc").
			IgnoreUnmapped(true)).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("nearby search failed: %w", err)
	}

	var atms []models.ATM
	for _, hit := range res.Hits.Hits {
		var doc atmDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			log.Printf("Error unmarshalling hit source: %s", err)
			continue
		}
		atms = append(atms, models.ATM{
			ID:           hit.Id,
			Name:         doc.Name,
			Bank:         doc.Bank,
			Coordinate:   models.Coordinate{Latitude: doc.Location.Lat, Longitude: doc.Location.Lon},
			Address:      doc.Address,
			Services:     doc.Services,
			IsOpen:       doc.IsOpen,
			OpeningHours: doc.OpeningHours,
			Rating:       doc.Rating,
			Logo:         doc.Logo,
		})
	}
	return atms, nil
}
