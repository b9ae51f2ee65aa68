package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/domain"
)

// API binds the application services to JSON request handlers. All request
// validation beyond JSON decoding lives in the services.
type API struct {
	quiz         *app.QuizService
	users        *app.UserService
	challenges   *app.ChallengeService
	leaderboard  *app.LeaderboardService
	destinations *app.DestinationService
}

func NewAPI(quiz *app.QuizService, users *app.UserService, challenges *app.ChallengeService, leaderboard *app.LeaderboardService, destinations *app.DestinationService) *API {
	return &API{
		quiz:         quiz,
		users:        users,
		challenges:   challenges,
		leaderboard:  leaderboard,
		destinations: destinations,
	}
}

// Register mounts all routes on the mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("POST /api/users", a.registerUser)
	mux.HandleFunc("GET /api/users/{username}", a.getUser)
	mux.HandleFunc("GET /api/users/{username}/challenges", a.listChallenges)
	mux.HandleFunc("GET /api/destinations/random", a.randomQuestion)
	mux.HandleFunc("POST /api/destinations/verify", a.verifyAnswer)
	mux.HandleFunc("POST /api/destinations", a.importDestination)
	mux.HandleFunc("POST /api/destinations/bulk", a.importDestinationsBulk)
	mux.HandleFunc("POST /api/challenges", a.createChallenge)
	mux.HandleFunc("GET /api/challenges/{code}", a.getChallenge)
	mux.HandleFunc("GET /api/leaderboard", a.topUsers)
}

type registerUserRequest struct {
	Username string `json:"username"`
}

func (a *API) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := a.users.Register(r.Context(), req.Username)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.Get(r.Context(), r.PathValue("username"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) randomQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := a.quiz.GetQuestion(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

type verifyAnswerRequest struct {
	DestinationID string `json:"destinationId"`
	Answer        string `json:"answer"`
	Username      string `json:"username"`
}

func (a *API) verifyAnswer(w http.ResponseWriter, r *http.Request) {
	var req verifyAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := a.quiz.VerifyAnswer(r.Context(), req.DestinationID, req.Answer, req.Username)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) importDestination(w http.ResponseWriter, r *http.Request) {
	var d domain.Destination
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := a.destinations.Import(r.Context(), d)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) importDestinationsBulk(w http.ResponseWriter, r *http.Request) {
	var ds []domain.Destination
	if err := json.NewDecoder(r.Body).Decode(&ds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := a.destinations.ImportMany(r.Context(), ds)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type createChallengeRequest struct {
	ChallengerUsername string `json:"challengerUsername"`
}

func (a *API) createChallenge(w http.ResponseWriter, r *http.Request) {
	var req createChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	challenge, err := a.challenges.Create(r.Context(), req.ChallengerUsername)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, challenge)
}

func (a *API) getChallenge(w http.ResponseWriter, r *http.Request) {
	view, err := a.challenges.Resolve(r.Context(), r.PathValue("code"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) listChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := a.challenges.ListForUser(r.Context(), r.PathValue("username"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

func (a *API) topUsers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	entries, err := a.leaderboard.Top(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoDestinations),
		errors.Is(err, domain.ErrDestinationNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrChallengeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateAlias), errors.Is(err, domain.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrCodeGeneration):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
