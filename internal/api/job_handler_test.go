package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/service"
	"github.com/openbesluit/reportgen/internal/store"
)

// stubJobStore implements store.JobStore backed by a map, without any
// claim logic; router tests only submit and query.
type stubJobStore struct {
	jobs      map[uuid.UUID]*domain.Job
	createErr error
}

var _ store.JobStore = (*stubJobStore)(nil)

func newStubJobStore() *stubJobStore {
	return &stubJobStore{jobs: make(map[uuid.UUID]*domain.Job)}
}

func (s *stubJobStore) CreateJob(_ context.Context, job *domain.Job) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.jobs[job.ID] = job
	return nil
}

func (s *stubJobStore) GetJob(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	job, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrJobNotFound
	}
	return job, nil
}

func (s *stubJobStore) ClaimNextScheduledJob(context.Context) (*domain.Job, error) {
	return nil, store.ErrNoScheduledJob
}

func (s *stubJobStore) CompleteJob(context.Context, uuid.UUID, domain.JobStatus) error {
	return nil
}

func (s *stubJobStore) RecoverOngoingJobs(context.Context) (int, error) {
	return 0, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// passingTargets accepts every report.
type passingTargets struct{}

func (passingTargets) Validate(context.Context, uuid.UUID) error { return nil }

func TestJobHandlerSubmitJob(t *testing.T) {
	t.Parallel()

	newHandler := func(jobs *stubJobStore, notify func()) *JobHandler {
		return NewJobHandler(service.NewJobService(jobs, passingTargets{}, notify), discardLogger())
	}

	t.Run("queues a job and returns it", func(t *testing.T) {
		t.Parallel()

		jobs := newStubJobStore()
		notified := false
		handler := newHandler(jobs, func() { notified = true })

		reportID := uuid.New()
		body := `{"kind":"single","report_ids":["` + reportID.String() + `"],"regenerate_citations":true}`
		req := httptest.NewRequest(http.MethodPost, "/report-generation-jobs", strings.NewReader(body))
		req.Header.Set("Mu-Session-Id", "session-1")
		rec := httptest.NewRecorder()

		handler.SubmitJob(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp JobResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "single", resp.Kind)
		assert.Equal(t, "scheduled", resp.Status)
		assert.Equal(t, []string{reportID.String()}, resp.ReportIDs)
		assert.True(t, resp.RegenerateCitations)
		assert.True(t, notified)

		created, err := jobs.GetJob(context.Background(), uuid.MustParse(resp.ID))
		require.NoError(t, err)
		assert.Equal(t, domain.CallerContext{"Mu-Session-Id": "session-1"}, created.CallerContext)
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		t.Parallel()

		handler := newHandler(newStubJobStore(), nil)
		body := `{"kind":"export","report_ids":["` + uuid.New().String() + `"]}`
		req := httptest.NewRequest(http.MethodPost, "/report-generation-jobs", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SubmitJob(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects an empty report list", func(t *testing.T) {
		t.Parallel()

		handler := newHandler(newStubJobStore(), nil)
		req := httptest.NewRequest(http.MethodPost, "/report-generation-jobs",
			strings.NewReader(`{"kind":"bundle","report_ids":[]}`))
		rec := httptest.NewRecorder()

		handler.SubmitJob(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		handler := newHandler(newStubJobStore(), nil)
		req := httptest.NewRequest(http.MethodPost, "/report-generation-jobs",
			strings.NewReader(`{"kind":`))
		rec := httptest.NewRecorder()

		handler.SubmitJob(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestJobHandlerGetJob(t *testing.T) {
	t.Parallel()

	jobs := newStubJobStore()
	job, err := domain.NewJob(domain.JobKindSingle, []uuid.UUID{uuid.New()}, false, nil)
	require.NoError(t, err)
	require.NoError(t, jobs.CreateJob(context.Background(), job))

	handler := NewJobHandler(service.NewJobService(jobs, passingTargets{}, nil), discardLogger())
	router := NewRouter(
		&ReportHandler{logger: discardLogger()},
		&MeetingHandler{logger: discardLogger()},
		handler,
		discardLogger(),
	)

	t.Run("returns a queryable job", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/report-generation-jobs/"+job.ID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp JobResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, job.ID.String(), resp.ID)
	})

	t.Run("unknown job is a 404", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/report-generation-jobs/"+uuid.New().String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed job ID is a 400", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/report-generation-jobs/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
