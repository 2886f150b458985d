package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/handler/http/response"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/colorutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRosterService struct {
	gridReq     roster.GridRequest
	cellReq     roster.CellRequest
	contrastReq roster.ContrastRequest
	err         error
}

func (f *fakeRosterService) GetGrid(ctx context.Context, req roster.GridRequest) (roster.GridResponse, error) {
	f.gridReq = req
	if f.err != nil {
		return roster.GridResponse{}, f.err
	}
	if err := req.Validate(); err != nil {
		return roster.GridResponse{}, err
	}
	return roster.GridResponse{PassID: "pass-1", View: req.View, Theme: req.Theme.Name()}, nil
}

func (f *fakeRosterService) GetCell(ctx context.Context, req roster.CellRequest) (roster.CellDetailResponse, error) {
	f.cellReq = req
	if f.err != nil {
		return roster.CellDetailResponse{}, f.err
	}
	return roster.CellDetailResponse{Theme: req.Theme.Name(), Cell: roster.CellResponse{Date: req.Date}}, nil
}

func (f *fakeRosterService) GetWindow(ctx context.Context, req roster.WindowRequest) (roster.WindowResponse, error) {
	if f.err != nil {
		return roster.WindowResponse{}, f.err
	}
	return roster.WindowResponse{View: req.View, Days: []string{req.Date}}, nil
}

func (f *fakeRosterService) GetContrast(ctx context.Context, req roster.ContrastRequest) (roster.ContrastResponse, error) {
	f.contrastReq = req
	return roster.ContrastResponse{Hex: req.Hex, Theme: req.Theme, TextColor: colorutil.ContrastText(req.Hex, colorutil.ParseTheme(req.Theme))}, nil
}

func newTestRouter(svc roster.RosterService) http.Handler {
	return NewRouter(RouterOptions{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}, LogOutput: io.Discard}, NewRosterHandler(svc))
}

func serve(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body response.Response
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestRosterHandler_GetGrid(t *testing.T) {
	svc := &fakeRosterService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roster?date=2025-03-10&view=week&team=Civil&include_hidden=true&theme=dark", nil)
	rec, body := serve(t, router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "2025-03-10", svc.gridReq.Date)
	require.NotNil(t, svc.gridReq.Team)
	assert.Equal(t, "Civil", *svc.gridReq.Team)
	assert.True(t, svc.gridReq.IncludeHidden)
	assert.False(t, svc.gridReq.IncludeInactive)
	assert.True(t, svc.gridReq.Theme.Dark)
}

func TestRosterHandler_GetGrid_BadFlag(t *testing.T) {
	router := newTestRouter(&fakeRosterService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roster?date=2025-03-10&view=month&include_hidden=maybe", nil)
	rec, body := serve(t, router, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Details, "include_hidden")
}

func TestRosterHandler_GetGrid_ValidationError(t *testing.T) {
	router := newTestRouter(&fakeRosterService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roster?date=someday&view=month", nil)
	rec, body := serve(t, router, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, roster.ErrInvalidFocusDate.Error(), body.Error.Details["date"])
}

func TestRosterHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: timeout", roster.ErrSnapshotUnavailable), http.StatusServiceUnavailable},
		{roster.ErrEmployeeNotFound, http.StatusNotFound},
		{roster.ErrInvalidGranularity, http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			router := newTestRouter(&fakeRosterService{err: c.err})
			req := httptest.NewRequest(http.MethodGet, "/api/v1/roster/cell?employee=jdoe&date=2025-03-10", nil)
			rec, body := serve(t, router, req)

			assert.Equal(t, c.code, rec.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestRosterHandler_GetCell_ThemeFromHeader(t *testing.T) {
	svc := &fakeRosterService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, `/api/v1/roster/cell?employee=CORP%5Cjdoe&date=2025-03-10`, nil)
	req.Header.Set("X-Theme", "dark")
	rec, _ := serve(t, router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `CORP\jdoe`, svc.cellReq.Employee)
	assert.True(t, svc.cellReq.Theme.Dark)
}

func TestRosterHandler_GetWindow(t *testing.T) {
	router := newTestRouter(&fakeRosterService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roster/window?date=2025-03-10&view=week", nil)
	rec, body := serve(t, router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "week", data["view"])
}

func TestRosterHandler_GetContrast(t *testing.T) {
	svc := &fakeRosterService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/colors/contrast?hex=%23FFFFFF", nil)
	req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	rec, body := serve(t, router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dark", svc.contrastReq.Theme)
	data := body.Data.(map[string]interface{})
	assert.Equal(t, colorutil.DarkThemeDarkText, data["text_color"])

	req = httptest.NewRequest(http.MethodGet, "/api/v1/colors/contrast", nil)
	rec, _ = serve(t, router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Heartbeat(t *testing.T) {
	router := newTestRouter(&fakeRosterService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())
}
