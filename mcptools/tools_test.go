package mcptools

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawscape-backend/models"
	"lawscape-backend/service"

	"github.com/google/uuid"
)

type fakeFinder struct {
	got    service.FindRequest
	result *service.FindResult
	err    error
}

func (f *fakeFinder) FindWithDependencies(ctx context.Context, req service.FindRequest) (*service.FindResult, error) {
	f.got = req
	return f.result, f.err
}

type fakeJobs map[uuid.UUID]*models.IngestJob

func (f fakeJobs) GetJob(ctx context.Context, id uuid.UUID) (*models.IngestJob, error) {
	job, ok := f[id]
	if !ok {
		return nil, service.ErrJobNotFound
	}
	return job, nil
}

func TestFindHandler(t *testing.T) {
	s := 0.8
	finder := &fakeFinder{result: &service.FindResult{
		Query: "道路交通法",
		Records: []models.DependencyRecord{
			{
				ID: "A",
				Contents: []models.ScoredDocument{{
					Document: models.NewLawDocument(models.Law{ID: "A", Name: "道路交通法", Index: models.ArticleIndex{Article: "1", Title: "第一条"}, Text: "目的"}),
					Score:    &s,
				}},
				Parents:  []string{},
				Children: []string{"P1"},
			},
			{
				ID: "P1",
				Contents: []models.ScoredDocument{{
					Document: models.NewPrecedentDocument(models.Precedent{ID: "P1", Info: models.PrecedentInfo{LawsuitID: "P1", CourtName: "最高裁判所"}, Text: "道路交通法違反"}),
				}},
				Parents:  []string{"A"},
				Children: []string{},
			},
		},
	}}

	handler := NewFindHandler(finder)
	_, out, err := handler(context.Background(), nil, FindInput{Word: "道路交通法", Limit: 5, Rewrite: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if finder.got.Word != "道路交通法" || finder.got.Limit != 5 || finder.got.CancelScore != nil || !finder.got.Rewrite {
		t.Errorf("unexpected request %+v", finder.got)
	}
	if out.Query != "道路交通法" || len(out.Records) != 2 {
		t.Fatalf("unexpected output %+v", out)
	}

	law := out.Records[0].Contents[0]
	if law.Type != "Law" || law.Name != "道路交通法" || law.Article == nil || law.Article.Title != "第一条" || law.Score == nil || *law.Score != 0.8 {
		t.Errorf("unexpected law view %+v", law)
	}
	precedent := out.Records[1].Contents[0]
	if precedent.Type != "Precedent" || precedent.Name != "" || precedent.Precedent == nil || precedent.Precedent.CourtName != "最高裁判所" || precedent.Score != nil {
		t.Errorf("unexpected precedent view %+v", precedent)
	}
	if out.Records[1].Parents[0] != "A" {
		t.Errorf("edges not preserved: %+v", out.Records[1])
	}
}

func TestFindHandler_Errors(t *testing.T) {
	finder := &fakeFinder{err: models.ErrEmptyQuery}
	handler := NewFindHandler(finder)

	if _, _, err := handler(context.Background(), nil, FindInput{Word: " "}); !errors.Is(err, models.ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
	if _, _, err := handler(context.Background(), nil, FindInput{Word: "x", Limit: -1}); !errors.Is(err, models.ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestFindHandler_ExplicitZeroScore(t *testing.T) {
	finder := &fakeFinder{result: &service.FindResult{Query: "刑法"}}
	handler := NewFindHandler(finder)

	zero := 0.0
	if _, _, err := handler(context.Background(), nil, FindInput{Word: "刑法", CancelScore: &zero}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if finder.got.CancelScore == nil || *finder.got.CancelScore != 0 {
		t.Errorf("expected explicit zero score, got %v", finder.got.CancelScore)
	}
}

func TestJobHandler(t *testing.T) {
	id := uuid.New()
	msg := "search backend index failed"
	created := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	jobs := fakeJobs{id: {
		ID:            id,
		Status:        models.JobStatusFailed,
		Source:        "api",
		PrimaryKey:    models.PrimaryKeyFragment,
		DocumentCount: 3,
		ErrorMessage:  &msg,
		CreatedAt:     created,
		UpdatedAt:     created,
	}}
	handler := NewJobHandler(jobs)

	_, view, err := handler(context.Background(), nil, JobInput{JobID: id.String()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ID != id.String() || view.Status != "failed" || view.ErrorMessage != msg || view.CreatedAt != "2024-04-01T09:00:00Z" || view.CompletedAt != "" {
		t.Errorf("unexpected view %+v", view)
	}

	if _, _, err := handler(context.Background(), nil, JobInput{JobID: uuid.NewString()}); err == nil {
		t.Error("expected error for unknown job")
	}
	if _, _, err := handler(context.Background(), nil, JobInput{JobID: "nope"}); err == nil {
		t.Error("expected error for malformed id")
	}
}

func TestNewServer(t *testing.T) {
	if NewServer(&fakeFinder{}, nil, "test") == nil {
		t.Fatal("expected server")
	}
}
