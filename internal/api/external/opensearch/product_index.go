package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ticketpix/internal/api/domain/product"

	"github.com/opensearch-project/opensearch-go"
)

var _ product.ProductIndex = (*ProductIndex)(nil)

// ProductIndex keeps a full-text copy of the catalogue. Postgres stays the
// source of truth; search only returns product IDs.
type ProductIndex struct {
	client *opensearch.Client
	index  string
}

func NewProductIndex(ctx context.Context, urls []string, index string) (*ProductIndex, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	cfg := opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	}
	client, err := opensearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}

	idx := &ProductIndex{client: client, index: index}
	if err := idx.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (s *ProductIndex) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"id":          map[string]any{"type": "keyword"},
				"name":        map[string]any{"type": "text"},
				"description": map[string]any{"type": "text"},
				"slug":        map[string]any{"type": "keyword"},
				"status":      map[string]any{"type": "keyword"},
				"price":       map[string]any{"type": "scaled_float", "scaling_factor": 100},
				"event_date":  map[string]any{"type": "date"},
				"updated_at":  map[string]any{"type": "date"},
			},
		},
		"settings": map[string]any{
			"number_of_replicas": 0,
		},
	}
	buf, _ := json.Marshal(body)
	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

type productDoc struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Slug        string         `json:"slug"`
	Status      product.Status `json:"status"`
	Price       float64        `json:"price"`
	EventDate   *time.Time     `json:"event_date,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func newProductDoc(p product.Product) productDoc {
	doc := productDoc{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Status:    p.Status,
		Price:     p.Price,
		EventDate: p.EventDate,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	return doc
}

// IndexProduct upserts the product document under its ID.
func (s *ProductIndex) IndexProduct(ctx context.Context, p product.Product) error {
	payload, _ := json.Marshal(newProductDoc(p))
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(p.ID),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

// SearchProducts returns IDs of active products matching text, best match first.
func (s *ProductIndex) SearchProducts(ctx context.Context, text string, limit int) ([]string, error) {
	raw, _ := json.Marshal(searchBody(text, limit))

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var sr struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	ids := make([]string, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func searchBody(text string, limit int) map[string]any {
	return map[string]any{
		"size":    limit,
		"_source": false,
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     text,
						"fields":    []string{"name^2", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": []map[string]any{
					{"term": map[string]any{"status": string(product.StatusActive)}},
				},
			},
		},
	}
}
