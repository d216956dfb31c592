package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/drewhq/drew/internal/domain/entity"
	repo "github.com/drewhq/drew/internal/domain/repository"
	"github.com/drewhq/drew/internal/infrastructure/ai"
	"github.com/drewhq/drew/pkg/helpers"
)

var ErrActivityNotFound = errors.New("activity not found")

// ActivityService covers discovery listings, full-text and semantic search,
// and activity management.
type ActivityService struct {
	Activities repo.ActivityRepository
	ES         *elasticsearch.Client
	ESIndex    string
	AI         *ai.Client
	GCS        *storage.Client
	GCSBucket  string
	Logger     *logrus.Logger
}

func NewActivityService(activities repo.ActivityRepository, es *elasticsearch.Client, esIndex string, aiClient *ai.Client, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *ActivityService {
	return &ActivityService{
		Activities: activities,
		ES:         es,
		ESIndex:    esIndex,
		AI:         aiClient,
		GCS:        gcs,
		GCSBucket:  gcsBucket,
		Logger:     logger,
	}
}

// List returns a page of activities plus the total match count. Free-text
// search goes through Elasticsearch when available and falls back to SQL.
func (s *ActivityService) List(ctx context.Context, f entity.ActivityFilter) ([]entity.Activity, int, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Search != "" && s.ES != nil && s.ESIndex != "" {
		if items, total, err := s.esSearch(ctx, f); err == nil {
			return items, total, nil
		} else if s.Logger != nil {
			s.Logger.WithError(err).Warn("es search failed, falling back to sql")
		}
	}
	return s.Activities.List(ctx, f)
}

// Get loads one activity. expand fills in offering and prerequisite details.
func (s *ActivityService) Get(ctx context.Context, id string, expand bool) (*entity.Activity, error) {
	a, err := s.Activities.GetByID(ctx, id)
	if err != nil || a == nil {
		return nil, ErrActivityNotFound
	}
	if expand {
		if err := s.Activities.ExpandOfferings(ctx, a); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("activity_id", id).Warn("expand offerings failed")
		}
		if err := s.Activities.ExpandPreRequisites(ctx, a); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("activity_id", id).Warn("expand prerequisites failed")
		}
	}
	return a, nil
}

func (s *ActivityService) Create(ctx context.Context, a *entity.Activity) (*entity.Activity, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := s.Activities.Create(ctx, a); err != nil {
		return nil, err
	}
	s.refreshSearchState(ctx, a)
	return a, nil
}

func (s *ActivityService) Update(ctx context.Context, a *entity.Activity) (*entity.Activity, error) {
	if err := s.Activities.Update(ctx, a); err != nil {
		return nil, err
	}
	s.refreshSearchState(ctx, a)
	return a, nil
}

// UploadImage stores an image in GCS and appends its public URL to the
// activity's gallery. The first image becomes the thumbnail.
func (s *ActivityService) UploadImage(ctx context.Context, activityID string, r io.Reader, filename, contentType string) (*entity.Activity, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}
	a, err := s.Activities.GetByID(ctx, activityID)
	if err != nil || a == nil {
		return nil, ErrActivityNotFound
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("activities", activityID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	a.Images = append(a.Images, url)
	if a.ThumbnailURL == "" {
		a.ThumbnailURL = url
	}
	if err := s.Activities.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// refreshSearchState re-embeds the activity text and re-indexes the document.
// Both are best effort; listing keeps working from Postgres either way.
func (s *ActivityService) refreshSearchState(ctx context.Context, a *entity.Activity) {
	if s.AI.Enabled() {
		text := embeddingText(a)
		if vec, err := s.AI.Embed(ctx, text); err == nil {
			if err := s.Activities.SetEmbedding(ctx, a.ID, vec); err != nil && s.Logger != nil {
				s.Logger.WithError(err).WithField("activity_id", a.ID).Warn("store embedding failed")
			}
		} else if s.Logger != nil {
			s.Logger.WithError(err).WithField("activity_id", a.ID).Warn("embed activity failed")
		}
	}
	if err := s.indexActivity(ctx, a); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("activity_id", a.ID).Warn("es index failed")
	}
}

func embeddingText(a *entity.Activity) string {
	parts := []string{a.Title, a.ShortDescription, a.LongDescription, a.Category, a.Location, a.City, a.State}
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

func (s *ActivityService) indexActivity(ctx context.Context, a *entity.Activity) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":                a.ID,
		"title":             a.Title,
		"short_description": a.ShortDescription,
		"long_description":  a.LongDescription,
		"category":          a.Category,
		"location":          a.Location,
		"city":              a.City,
		"state":             a.State,
		"price":             a.Price,
		"updated_at":        a.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return errors.New("es index response: " + res.Status())
	}
	return nil
}

// esSearch runs a multi_match query and hydrates hits from Postgres so the
// response shape matches the SQL path.
func (s *ActivityService) esSearch(ctx context.Context, f entity.ActivityFilter) ([]entity.Activity, int, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  f.Search,
				"fields": []string{"title^3", "short_description^2", "long_description", "category", "city", "state", "location"},
			},
		},
		"from": f.Offset,
		"size": f.Limit,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, 0, errors.New("es search response: " + res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}

	items := make([]entity.Activity, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		a, err := s.Activities.GetByID(ctx, h.ID)
		if err != nil || a == nil {
			continue
		}
		items = append(items, *a)
	}
	return items, parsed.Hits.Total.Value, nil
}
