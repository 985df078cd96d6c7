package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/clock"
	"github.com/Shivanand-hulikatti/pitchside-boards/internal/handler"
	"github.com/Shivanand-hulikatti/pitchside-boards/internal/model"
	"github.com/Shivanand-hulikatti/pitchside-boards/internal/repository"
	"github.com/Shivanand-hulikatti/pitchside-boards/internal/service"
)

const staffToken = "matchday"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := service.NewBoardService(
		repository.NewMemoryBoardRepository(),
		clock.NewFixed(now),
		service.WithLogger(logger),
	)
	if _, err := svc.Seed(context.Background(), model.DefaultCatalogue()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	srv := httptest.NewServer(handler.NewRouter(handler.NewBoardHandler(svc, logger), handler.RouterConfig{
		CORSOrigins: []string{"*"},
		StaffToken:  staffToken,
		Logger:      logger,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, out any) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if strings.HasPrefix(path, "/staff/") {
		req.Header.Set("Authorization", "Bearer "+staffToken)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return res.StatusCode
}

func TestSponsorshipLifecycle(t *testing.T) {
	srv := newServer(t)

	var available []model.Board
	if status := do(t, srv, http.MethodGet, "/boards/available", "", &available); status != http.StatusOK {
		t.Fatalf("list available: status %d", status)
	}
	if len(available) != 20 {
		t.Fatalf("expected 20 available boards, got %d", len(available))
	}
	id := available[0].ID

	var board model.Board
	status := do(t, srv, http.MethodPost, "/staff/boards/"+id+"/reserve",
		`{"sponsor":{"name":"Acme Hardware","email":"info@acme.example"},"end_date":"2027-03-01"}`, &board)
	if status != http.StatusOK || board.Status != model.StatusReserved {
		t.Fatalf("reserve: status %d board %+v", status, board)
	}

	var conflict model.ErrorResponse
	status = do(t, srv, http.MethodPost, "/staff/boards/"+id+"/reserve", `{"sponsor":{"name":"Other"}}`, &conflict)
	if status != http.StatusConflict || conflict.Code != "board_not_available" {
		t.Fatalf("second reserve: status %d code %q", status, conflict.Code)
	}

	var badAmount model.ErrorResponse
	status = do(t, srv, http.MethodPost, "/staff/boards/"+id+"/confirm-payment", `{"paid_amount":0}`, &badAmount)
	if status != http.StatusUnprocessableEntity || badAmount.Code != "invalid_amount" {
		t.Fatalf("zero payment: status %d code %q", status, badAmount.Code)
	}

	var confirmed model.Board
	status = do(t, srv, http.MethodPost, "/staff/boards/"+id+"/confirm-payment", `{"paid_amount":300}`, &confirmed)
	if status != http.StatusOK || confirmed.Status != model.StatusSponsored {
		t.Fatalf("confirm: status %d board %+v", status, confirmed)
	}

	var stats model.Stats
	if status := do(t, srv, http.MethodGet, "/stats", "", &stats); status != http.StatusOK {
		t.Fatalf("stats: status %d", status)
	}
	if stats.Sponsored != 1 || stats.TotalRevenue != 300 || stats.Available != 19 || stats.OccupancyRate != 5 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	var ended model.Board
	status = do(t, srv, http.MethodPost, "/staff/boards/"+id+"/end", "", &ended)
	if status != http.StatusOK || ended.Status != model.StatusAvailable || ended.Sponsor != nil || ended.Contract != nil {
		t.Fatalf("end: status %d board %+v", status, ended)
	}
}

func TestRenewalFlow(t *testing.T) {
	srv := newServer(t)

	var boards []model.Board
	do(t, srv, http.MethodGet, "/boards?location=clubhouse", "", &boards)
	if len(boards) != 2 {
		t.Fatalf("expected 2 clubhouse boards, got %d", len(boards))
	}
	id := boards[0].ID

	do(t, srv, http.MethodPost, "/staff/boards/"+id+"/reserve", `{"sponsor":{"name":"Bar Nine"},"end_date":"2026-03-20"}`, nil)
	var confirmed model.Board
	do(t, srv, http.MethodPost, "/staff/boards/"+id+"/confirm-payment", `{"paid_amount":100}`, &confirmed)
	if confirmed.Status != model.StatusRenewalDue {
		t.Fatalf("expected renewal-due, got %s", confirmed.Status)
	}

	var renewals []model.Board
	do(t, srv, http.MethodGet, "/boards/renewals", "", &renewals)
	if len(renewals) != 1 || renewals[0].ID != id {
		t.Fatalf("unexpected renewals %+v", renewals)
	}

	var sweep map[string]int
	if status := do(t, srv, http.MethodPost, "/staff/renewals/sweep", "", &sweep); status != http.StatusOK || sweep["flagged"] != 1 {
		t.Fatalf("sweep: status %d body %v", status, sweep)
	}

	var errResp model.ErrorResponse
	status := do(t, srv, http.MethodPost, "/staff/boards/"+id+"/renew", `{"end_date":"2026-03-10"}`, &errResp)
	if status != http.StatusUnprocessableEntity || errResp.Code != "invalid_date" {
		t.Fatalf("renew backwards: status %d code %q", status, errResp.Code)
	}

	var renewed model.Board
	status = do(t, srv, http.MethodPost, "/staff/boards/"+id+"/renew", `{"end_date":"2027-03-20"}`, &renewed)
	if status != http.StatusOK || renewed.Status != model.StatusSponsored || renewed.Sponsor == nil || renewed.Sponsor.Name != "Bar Nine" {
		t.Fatalf("renew: status %d board %+v", status, renewed)
	}
}

func TestStaffRoutesRequireToken(t *testing.T) {
	srv := newServer(t)

	res, err := srv.Client().Post(srv.URL+"/staff/renewals/sweep", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", res.StatusCode)
	}

	res, err = srv.Client().Get(srv.URL + "/boards")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected public route to be open, got %d", res.StatusCode)
	}
}

func TestGetBoardNotFound(t *testing.T) {
	srv := newServer(t)

	var errResp model.ErrorResponse
	status := do(t, srv, http.MethodGet, "/boards/does-not-exist", "", &errResp)
	if status != http.StatusNotFound || errResp.Code != "not_found" {
		t.Fatalf("status %d code %q", status, errResp.Code)
	}
}
