package service

import (
	"context"
	"errors"
	"testing"

	"lawscape-backend/models"
	"lawscape-backend/service/mocks"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func TestIngestService_SyncIngestTracksJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockSearchBackend(ctrl)
	jobs := mocks.NewMockIngestJobStore(ctrl)
	jobID := uuid.New()

	docs := []models.LegalDocument{
		lawHit("A", "民法", "1", "私権").Document,
		precedentHit("P1", "判決").Document,
	}

	gomock.InOrder(
		jobs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, job *models.IngestJob) error {
			if job.Status != models.JobStatusPending || job.DocumentCount != 2 || job.PrimaryKey != models.PrimaryKeyFragment {
				t.Errorf("unexpected job on create: %+v", job)
			}
			job.ID = jobID
			return nil
		}),
		jobs.EXPECT().UpdateStatus(gomock.Any(), jobID, models.JobStatusInProgress).Return(nil),
		backend.EXPECT().Index(gomock.Any(), docs, models.PrimaryKeyFragment).Return(nil),
		jobs.EXPECT().Complete(gomock.Any(), jobID).Return(nil),
	)

	svc := NewIngestService(
		IngestWithGateway(NewSearchGateway(backend)),
		IngestWithJobStore(jobs),
	)

	result, err := svc.Ingest(context.Background(), IngestRequest{Documents: docs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Job.ID != jobID || result.Job.Status != models.JobStatusCompleted {
		t.Errorf("unexpected job: %+v", result.Job)
	}
}

func TestIngestService_IndexFailureFailsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockSearchBackend(ctrl)
	jobs := mocks.NewMockIngestJobStore(ctrl)
	jobID := uuid.New()
	docs := []models.LegalDocument{lawHit("A", "民法", "1", "").Document}

	jobs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, job *models.IngestJob) error {
		job.ID = jobID
		return nil
	})
	jobs.EXPECT().UpdateStatus(gomock.Any(), jobID, models.JobStatusInProgress).Return(nil)
	backend.EXPECT().Index(gomock.Any(), docs, models.PrimaryKeyID).Return(errors.New("connection reset"))
	jobs.EXPECT().Fail(gomock.Any(), jobID, gomock.Any()).Return(nil)

	svc := NewIngestService(
		IngestWithGateway(NewSearchGateway(backend)),
		IngestWithJobStore(jobs),
	)

	result, err := svc.Ingest(context.Background(), IngestRequest{Documents: docs, PrimaryKey: "id"})
	if !errors.Is(err, models.ErrBackendIndexFailed) {
		t.Fatalf("expected ErrBackendIndexFailed, got %v", err)
	}
	if result == nil || result.Job.Status != models.JobStatusFailed || result.Job.ErrorMessage == nil {
		t.Errorf("expected failed job in result, got %+v", result)
	}
}

func TestIngestService_AsyncPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockSearchBackend(ctrl)
	publisher := mocks.NewMockBatchPublisher(ctrl)
	docs := []models.LegalDocument{precedentHit("P1", "判決").Document}

	backend.EXPECT().Index(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	publisher.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, batch models.IngestBatch) error {
		if batch.JobID == uuid.Nil {
			t.Error("queued batch must carry a job id")
		}
		if batch.Source != "api" || len(batch.Documents) != 1 {
			t.Errorf("unexpected batch: %+v", batch)
		}
		return nil
	})

	svc := NewIngestService(
		IngestWithGateway(NewSearchGateway(backend)),
		IngestWithPublisher(publisher),
	)

	result, err := svc.Ingest(context.Background(), IngestRequest{Documents: docs, Async: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Job.Status != models.JobStatusPending {
		t.Errorf("expected pending job, got %s", result.Job.Status)
	}
}

func TestIngestService_Validation(t *testing.T) {
	svc := NewIngestService()
	ctx := context.Background()
	docs := []models.LegalDocument{lawHit("A", "民法", "1", "").Document}

	if _, err := svc.Ingest(ctx, IngestRequest{}); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
	if _, err := svc.Ingest(ctx, IngestRequest{Documents: docs, PrimaryKey: "name"}); !errors.Is(err, models.ErrInvalidPrimaryKey) {
		t.Errorf("expected ErrInvalidPrimaryKey, got %v", err)
	}
	if _, err := svc.Ingest(ctx, IngestRequest{Documents: docs, Async: true}); !errors.Is(err, ErrAsyncUnavailable) {
		t.Errorf("expected ErrAsyncUnavailable, got %v", err)
	}
	bad := []models.LegalDocument{models.NewLawDocument(models.Law{Name: "無名"})}
	if _, err := svc.Ingest(ctx, IngestRequest{Documents: bad}); err == nil {
		t.Error("expected error for document without id")
	}
}

func TestIngestService_GetJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jobs := mocks.NewMockIngestJobStore(ctrl)
	known := uuid.New()
	unknown := uuid.New()

	jobs.EXPECT().GetByID(gomock.Any(), known).Return(&models.IngestJob{ID: known, Status: models.JobStatusCompleted}, nil)
	jobs.EXPECT().GetByID(gomock.Any(), unknown).Return(nil, models.ErrNotFound)

	svc := NewIngestService(IngestWithJobStore(jobs))

	job, err := svc.GetJob(context.Background(), known)
	if err != nil || job.ID != known {
		t.Errorf("unexpected result: %+v, %v", job, err)
	}
	if _, err := svc.GetJob(context.Background(), unknown); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}
