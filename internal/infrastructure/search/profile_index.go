package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

// ProfileMapping is the index mapping created at startup.
const ProfileMapping = `{
  "mappings": {
    "properties": {
      "user":     {"type": "keyword"},
      "name":     {"type": "text"},
      "status":   {"type": "text"},
      "company":  {"type": "text"},
      "location": {"type": "text"},
      "bio":      {"type": "text"},
      "skills":   {"type": "text"},
      "updated_at": {"type": "date"}
    }
  }
}`

const requestTimeout = 3 * time.Second

// ProfileIndex stores one search document per profile, keyed by owner id.
type ProfileIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewProfileIndex(es *elasticsearch.Client, index string) *ProfileIndex {
	return &ProfileIndex{es: es, index: index}
}

type profileDoc struct {
	UserID    string   `json:"user"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Company   string   `json:"company,omitempty"`
	Location  string   `json:"location,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Skills    []string `json:"skills"`
	UpdatedAt string   `json:"updated_at"`
}

func toDoc(p *entity.Profile) profileDoc {
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return profileDoc{
		UserID:    p.User.ID,
		Name:      p.User.Name,
		Status:    p.Status,
		Company:   p.Company,
		Location:  p.Location,
		Bio:       p.Bio,
		Skills:    p.Skills,
		UpdatedAt: updated.UTC().Format(time.RFC3339Nano),
	}
}

func (i *ProfileIndex) Index(ctx context.Context, p *entity.Profile) error {
	b, err := json.Marshal(toDoc(p))
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := esapi.IndexRequest{Index: i.index, DocumentID: p.User.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return &helpers.ESError{Status: res.Status()}
	}
	return nil
}

func (i *ProfileIndex) Remove(ctx context.Context, userID string) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := esapi.DeleteRequest{Index: i.index, DocumentID: userID}.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return &helpers.ESError{Status: res.Status()}
	}
	return nil
}

// Search runs a multi_match query over name, status, skills and company.
func (i *ProfileIndex) Search(ctx context.Context, q string, size int) ([]application.ProfileHit, error) {
	b, err := json.Marshal(buildQuery(q, size))
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.es.Search(
		i.es.Search.WithContext(c),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, &helpers.ESError{Status: res.Status()}
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64    `json:"_score"`
				Source profileDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]application.ProfileHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, application.ProfileHit{
			UserID:   h.Source.UserID,
			Name:     h.Source.Name,
			Status:   h.Source.Status,
			Company:  h.Source.Company,
			Location: h.Source.Location,
			Skills:   h.Source.Skills,
			Score:    h.Score,
		})
	}
	return out, nil
}

func buildQuery(q string, size int) map[string]any {
	if size <= 0 || size > 50 {
		size = 10
	}
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "skills^2", "status", "company", "location", "bio"},
			},
		},
		"size": size,
	}
}

var _ application.ProfileIndex = (*ProfileIndex)(nil)
