package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/itbasis/go-clock"
	"github.com/tgalloway/courtside/internal/config"
	"github.com/tgalloway/courtside/internal/handlers"
	"github.com/tgalloway/courtside/internal/models"
	"github.com/tgalloway/courtside/internal/schedule"
	"github.com/tgalloway/courtside/internal/testutils"
	"github.com/tgalloway/courtside/internal/websocket"
)

// newTestApp wires the game and schedule routes over a fake store, skipping the
// auth middleware — handler behavior is what's under test here.
func newTestApp(t *testing.T) (*fiber.App, *testutils.FakeStore, models.Division, []models.Team) {
	t.Helper()
	store := testutils.NewFakeStore()

	division := store.AddDivision(models.Division{
		Name:      "Monday Rec",
		Location:  "Eastside Fieldhouse",
		Day:       "Monday",
		StartTime: "18:00",
		EndTime:   "22:00",
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local),
		TeamCount: 8,
	})
	var teams []models.Team
	for _, name := range []string{"Aces", "Bulls", "Comets"} {
		teams = append(teams, store.AddTeam(models.Team{DivisionID: division.ID, Name: name}))
	}

	mock := clock.NewMock()
	mock.Set(time.Date(2025, 2, 12, 12, 0, 0, 0, time.Local))
	policy := config.SeasonPolicy{RegularWeeks: 10, PlayoffMinTeams: 4, QuarterfinalMinTeams: 9}
	svc := schedule.NewService(store, policy, mock)

	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New()
	app.Get("/divisions/:id/schedule", handlers.GetDivisionSchedule(svc))
	app.Get("/divisions/:id/weeks/:week/team-counts", handlers.GetTeamCounts(svc))
	app.Get("/schedule/overview", handlers.GetScheduleOverview(svc))
	app.Get("/schedule/conflicts", handlers.CheckConflict(svc))
	app.Post("/divisions/:id/games", handlers.CreateGames(svc))
	app.Patch("/games", handlers.UpdateGames(svc))
	app.Patch("/games/:id", handlers.UpdateGame(svc))
	app.Delete("/games/:id", handlers.DeleteGame(svc))
	app.Post("/games/:id/score", handlers.UpdateScore(svc, hub))
	return app, store, division, teams
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
}

func TestCreateGamesEndpoint(t *testing.T) {
	app, store, division, teams := newTestApp(t)

	body := map[string]any{
		"week":      1,
		"week_type": "regular",
		"games": []map[string]string{
			{"game_name": "Aces vs Bulls", "date": "2025-01-06", "time": "18:00",
				"home_team_id": teams[0].ID.String(), "away_team_id": teams[1].ID.String()},
			{"game_name": "Comets vs Comets", "date": "2025-01-06", "time": "19:00",
				"home_team_id": teams[2].ID.String(), "away_team_id": teams[2].ID.String()},
		},
	}

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/divisions/"+division.ID.String()+"/games", body))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var result struct {
		Created  int      `json:"created"`
		Failures []string `json:"failures"`
	}
	decodeBody(t, resp, &result)
	if result.Created != 1 {
		t.Errorf("created = %d, want 1", result.Created)
	}
	if len(result.Failures) != 1 || result.Failures[0] != "Comets vs Comets" {
		t.Errorf("failures = %v", result.Failures)
	}
	if store.GameCount() != 1 {
		t.Errorf("stored games = %d, want 1", store.GameCount())
	}
}

func TestUpdateGameEndpointLocked(t *testing.T) {
	app, store, division, teams := newTestApp(t)
	game := store.AddGame(models.Game{
		DivisionID: division.ID,
		Name:       "Aces vs Bulls",
		StartsAt:   time.Date(2025, 1, 6, 18, 0, 0, 0, time.Local),
		HomeTeamID: teams[0].ID,
		AwayTeamID: teams[1].ID,
		Week:       1,
		Completed:  true,
	})

	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/games/"+game.ID.String(),
		map[string]string{"time": "19:00"}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("status = %d, want 409 for a locked game", resp.StatusCode)
	}
}

func TestUpdateGameEndpointLegacyStatusField(t *testing.T) {
	app, store, division, teams := newTestApp(t)
	game := store.AddGame(models.Game{
		DivisionID: division.ID,
		Name:       "Aces vs Bulls",
		StartsAt:   time.Date(2025, 1, 6, 18, 0, 0, 0, time.Local),
		HomeTeamID: teams[0].ID,
		AwayTeamID: teams[1].ID,
		Week:       1,
		Started:    true,
	})

	// The wire field "status" is the completed flag.
	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/games/"+game.ID.String(),
		map[string]bool{"status": true}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body handlers.GameResponse
	decodeBody(t, resp, &body)
	if !body.Status || body.State != "final" {
		t.Errorf("expected a final game, got status=%v state=%s", body.Status, body.State)
	}
	if stored, _ := store.StoredGame(game.ID); !stored.Completed {
		t.Error("completed flag not persisted")
	}
}

func TestDeleteGameEndpoint(t *testing.T) {
	app, store, division, teams := newTestApp(t)
	game := store.AddGame(models.Game{
		DivisionID: division.ID,
		Name:       "Aces vs Bulls",
		HomeTeamID: teams[0].ID,
		AwayTeamID: teams[1].ID,
		Week:       1,
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/games/"+game.ID.String(), nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("unconfirmed delete status = %d, want 409", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/games/"+game.ID.String()+"?confirmed=true", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("confirmed delete status = %d, want 204", resp.StatusCode)
	}
	if store.GameCount() != 0 {
		t.Error("game should be gone")
	}
}

func TestScheduleEndpoint(t *testing.T) {
	app, store, division, teams := newTestApp(t)
	store.AddGame(models.Game{
		DivisionID: division.ID,
		Name:       "Aces vs Bulls",
		StartsAt:   time.Date(2025, 1, 6, 18, 0, 0, 0, time.Local),
		HomeTeamID: teams[0].ID,
		AwayTeamID: teams[1].ID,
		Week:       1,
		Completed:  true,
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/divisions/"+division.ID.String()+"/schedule", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body handlers.ScheduleResponse
	decodeBody(t, resp, &body)
	if body.TotalWeeks != 12 {
		t.Errorf("total weeks = %d, want 12 for an 8-team division", body.TotalWeeks)
	}
	if body.CurrentWeek != 2 {
		t.Errorf("current week = %d, want 2", body.CurrentWeek)
	}
	if len(body.Weeks) != 12 || len(body.Weeks[0].Games) != 1 {
		t.Errorf("weeks payload not as expected")
	}
	if !body.Weeks[0].Games[0].Status || body.Weeks[0].Games[0].State != "final" {
		t.Errorf("legacy status translation wrong: %+v", body.Weeks[0].Games[0])
	}
}

func TestConflictEndpoint(t *testing.T) {
	app, _, division, _ := newTestApp(t)

	target := fmt.Sprintf("/schedule/conflicts?location=%s&day=%s&start=19:00&end=21:00",
		"Eastside%20Fieldhouse", division.Day)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 — conflicts are informational", resp.StatusCode)
	}

	var body struct {
		HasConflict bool   `json:"has_conflict"`
		Warning     string `json:"warning"`
	}
	decodeBody(t, resp, &body)
	if !body.HasConflict || body.Warning == "" {
		t.Errorf("expected an advisory conflict, got %+v", body)
	}
}
