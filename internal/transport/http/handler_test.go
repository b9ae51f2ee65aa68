package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/domain"
	"globetrotter-service/internal/infra/memory"
)

func TestGameFlowOverHTTP(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	// Register a player; registering again returns the same record.
	user := postJSON[domain.User](t, server, "/api/users", map[string]string{"username": "alice"}, http.StatusCreated)
	again := postJSON[domain.User](t, server, "/api/users", map[string]string{"username": "alice"}, http.StatusCreated)
	if user.ID != again.ID {
		t.Fatalf("expected idempotent registration, got ids %q and %q", user.ID, again.ID)
	}

	// Fetch a question and answer it (deliberately wrong).
	question := getJSON[domain.Question](t, server, "/api/destinations/random", http.StatusOK)
	if len(question.Options) == 0 || len(question.Clues) == 0 {
		t.Fatalf("expected options and clues, got %+v", question)
	}
	result := postJSON[domain.AnswerResult](t, server, "/api/destinations/verify", map[string]string{
		"destinationId": question.DestinationID,
		"answer":        "definitely wrong",
		"username":      "alice",
	}, http.StatusOK)
	if result.Correct || result.PointsEarned != 0 || result.CorrectAnswer == "" {
		t.Fatalf("expected incorrect result carrying the answer, got %+v", result)
	}

	// Answer correctly and check the leaderboard reflects the award.
	result = postJSON[domain.AnswerResult](t, server, "/api/destinations/verify", map[string]string{
		"destinationId": question.DestinationID,
		"answer":        result.CorrectAnswer,
		"username":      "alice",
	}, http.StatusOK)
	if !result.Correct || result.PointsEarned != app.PointsPerCorrect {
		t.Fatalf("expected correct answer for 10 points, got %+v", result)
	}

	entries := getJSON[[]domain.LeaderboardEntry](t, server, "/api/leaderboard", http.StatusOK)
	if len(entries) != 1 || entries[0].Username != "alice" || entries[0].Score != 10 || entries[0].Rank != 1 {
		t.Fatalf("expected alice ranked first with 10 points, got %+v", entries)
	}

	// Issue and resolve a challenge.
	challenge := postJSON[domain.Challenge](t, server, "/api/challenges", map[string]string{"challengerUsername": "alice"}, http.StatusCreated)
	if len(challenge.Code) != 6 {
		t.Fatalf("expected 6-char code, got %q", challenge.Code)
	}
	view := getJSON[domain.ChallengeView](t, server, "/api/challenges/"+challenge.Code, http.StatusOK)
	if view.Status != domain.ChallengePending || view.ChallengerUsername != "alice" {
		t.Fatalf("expected pending challenge for alice, got %+v", view)
	}

	listed := getJSON[[]domain.Challenge](t, server, "/api/users/alice/challenges", http.StatusOK)
	if len(listed) != 1 || listed[0].Code != challenge.Code {
		t.Fatalf("expected the one challenge listed, got %+v", listed)
	}
}

func TestNotFoundMapping(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/users/ghost")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/api/challenges/NOPE99")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown challenge, got %d", resp.StatusCode)
	}
}

func TestVerifyRejectsMalformedID(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	body, _ := json.Marshal(map[string]string{"destinationId": "garbage", "answer": "Paris"})
	resp, err := http.Post(server.URL+"/api/destinations/verify", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", resp.StatusCode)
	}
}

func TestImportRejectsDuplicateAlias(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	payload := map[string]any{"alias": "par01", "name": "Paris Again", "clues": []string{"c"}}
	body, _ := json.Marshal(payload)
	resp, err := http.Post(server.URL+"/api/destinations", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate alias, got %d", resp.StatusCode)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	api, _ := newTestAPI(t)
	mux := http.NewServeMux()
	api.Register(mux)
	return httptest.NewServer(mux)
}

func newTestAPI(t *testing.T) (*API, *app.QuizService) {
	t.Helper()
	store := memory.NewDestinationStore()
	users := memory.NewUserStore()
	challenges := memory.NewChallengeStore()

	destinationService := app.NewDestinationService(store)
	seed := []domain.Destination{
		{Alias: "par01", Name: "Paris", Clues: []string{"ironwork tower", "city of light"}, FunFacts: []string{"fact"}},
		{Alias: "tok01", Name: "Tokyo", Clues: []string{"scramble crossing", "largest metro area"}, FunFacts: []string{"fact"}},
		{Alias: "rio01", Name: "Rio de Janeiro", Clues: []string{"statue on a mountain", "carnival"}, FunFacts: []string{"fact"}},
		{Alias: "cai01", Name: "Cairo", Clues: []string{"pyramids nearby", "nile"}, FunFacts: []string{"fact"}},
	}
	if _, err := destinationService.ImportMany(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rnd := app.NewSeededRand(1)
	catalog := memory.NewCatalogCache(store, time.Minute)
	quiz := app.NewQuizService(catalog, store, app.NewScoreService(users), rnd)
	api := NewAPI(
		quiz,
		app.NewUserService(users),
		app.NewChallengeService(challenges, users, rnd),
		app.NewLeaderboardService(users),
		destinationService,
	)
	return api, quiz
}

func postJSON[T any](t *testing.T, server *httptest.Server, path string, payload any, wantStatus int) T {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("post %s: expected status %d, got %d", path, wantStatus, resp.StatusCode)
	}
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}

func getJSON[T any](t *testing.T, server *httptest.Server, path string, wantStatus int) T {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("get %s: expected status %d, got %d", path, wantStatus, resp.StatusCode)
	}
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}
