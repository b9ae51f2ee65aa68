package domain

import "time"

// Destination is a quiz subject. Records are created by the dataset import
// and immutable afterwards.
type Destination struct {
	ID         string    `json:"id"`
	Alias      string    `json:"alias"`
	Name       string    `json:"name"`
	Clues      []string  `json:"clues"`
	FunFacts   []string  `json:"funFacts"`
	Difficulty string    `json:"difficulty"` // defaults to "medium"
	CreatedAt  time.Time `json:"createdAt"`
}

// DestinationRef is the lightweight (id, name) projection served by the
// catalog cache; it is all the quiz engine needs to pick targets and decoys.
type DestinationRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is a player identity with monotonically increasing counters.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Score            int       `json:"score"`
	CorrectAnswers   int       `json:"correctAnswers"`
	IncorrectAnswers int       `json:"incorrectAnswers"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Question is the payload served to a player. The canonical name is never
// included; the alias stands in for the destination on the wire.
type Question struct {
	DestinationID string   `json:"destinationId"`
	Alias         string   `json:"alias"`
	Clues         []string `json:"clues"`
	Options       []string `json:"options"`
}

// AnswerResult summarizes a verification. CorrectAnswer always carries the
// canonical name regardless of outcome.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	FunFact       string `json:"funFact"`
	PointsEarned  int    `json:"pointsEarned"`
}

// ChallengeStatus is the lifecycle state of a challenge. Only the two states
// below are ever stored; expiry is computed lazily at read time.
type ChallengeStatus string

const (
	ChallengePending ChallengeStatus = "pending"
	ChallengeExpired ChallengeStatus = "expired"
)

// Challenge is a shareable invitation snapshotting the challenger's score at
// creation time. RecipientID is reserved for an acceptance flow that is not
// implemented; no operation writes it.
type Challenge struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	ChallengerID    string          `json:"challengerId"`
	RecipientID     string          `json:"recipientId,omitempty"`
	ChallengerScore int             `json:"challengerScore"`
	Status          ChallengeStatus `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	ExpiresAt       time.Time       `json:"expiresAt"`
}

// EffectiveStatus computes the status as of now without mutating the record.
func (c Challenge) EffectiveStatus(now time.Time) ChallengeStatus {
	if c.Status == ChallengePending && !now.Before(c.ExpiresAt) {
		return ChallengeExpired
	}
	return c.Status
}

// ChallengeView joins a challenge with its challenger's username and live
// score for resolution responses.
type ChallengeView struct {
	ID                 string          `json:"id"`
	Code               string          `json:"code"`
	ChallengerUsername string          `json:"challengerUsername"`
	ChallengerScore    int             `json:"challengerScore"`
	CurrentScore       int             `json:"currentScore"`
	Status             ChallengeStatus `json:"status"`
	CreatedAt          time.Time       `json:"createdAt"`
	ExpiresAt          time.Time       `json:"expiresAt"`
}

// LeaderboardEntry is one ranked row of the leaderboard projection.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}
