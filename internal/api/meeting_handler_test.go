package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/service"
	"github.com/openbesluit/reportgen/internal/store"
)

// stubMeetingStore serves one meeting with a fixed report list.
type stubMeetingStore struct {
	meetingID uuid.UUID
	reportIDs []uuid.UUID
}

var _ store.MeetingStore = (*stubMeetingStore)(nil)

func (s *stubMeetingStore) GetMeetingForReports(context.Context, []uuid.UUID) ([]*domain.Meeting, error) {
	return []*domain.Meeting{{ID: s.meetingID, Label: "VR 2024/21"}}, nil
}

func (s *stubMeetingStore) GetReportsForMeeting(_ context.Context, meetingID uuid.UUID) ([]uuid.UUID, error) {
	if meetingID != s.meetingID {
		return nil, nil
	}
	return s.reportIDs, nil
}

func (s *stubMeetingStore) GetBundleEntries(context.Context, []uuid.UUID) ([]store.BundleEntry, error) {
	return nil, store.ErrArtifactNotFound
}

func (s *stubMeetingStore) AttachBundle(context.Context, uuid.UUID, *domain.Artifact) (*domain.Artifact, error) {
	return nil, nil
}

func newMeetingRouter(meetings *stubMeetingStore, reports *stubReportStore) http.Handler {
	reportSvc := service.NewReportService(reports, &stubBlobStore{}, stubRenderer{})
	bundleSvc := service.NewBundleService(reportSvc, meetings, &stubBlobStore{})
	return NewRouter(
		&ReportHandler{logger: discardLogger()},
		NewMeetingHandler(bundleSvc, meetings, discardLogger()),
		&JobHandler{logger: discardLogger()},
		discardLogger(),
	)
}

func TestMeetingHandlerListReports(t *testing.T) {
	t.Parallel()

	reports := reportFixture()
	meetings := &stubMeetingStore{
		meetingID: uuid.New(),
		reportIDs: []uuid.UUID{reports.reportID},
	}
	router := newMeetingRouter(meetings, reports)

	t.Run("lists bundleable reports", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/meetings/"+meetings.meetingID.String()+"/reports", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp MeetingReportsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{reports.reportID.String()}, resp.ReportIDs)
	})

	t.Run("malformed meeting ID is a 400", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/meetings/geen-uuid/reports", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMeetingHandlerGenerateBundle(t *testing.T) {
	t.Parallel()

	t.Run("meeting without bundleable reports is a 400", func(t *testing.T) {
		t.Parallel()

		meetings := &stubMeetingStore{meetingID: uuid.New()}
		router := newMeetingRouter(meetings, reportFixture())

		req := httptest.NewRequest(http.MethodPost, "/meetings/"+meetings.meetingID.String()+"/bundle", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing report artifacts abort the bundle", func(t *testing.T) {
		t.Parallel()

		reports := reportFixture()
		meetings := &stubMeetingStore{
			meetingID: uuid.New(),
			reportIDs: []uuid.UUID{reports.reportID},
		}
		router := newMeetingRouter(meetings, reports)

		req := httptest.NewRequest(http.MethodPost, "/meetings/"+meetings.meetingID.String()+"/bundle", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
