package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"globetrotter-service/internal/domain"
	"github.com/google/uuid"
)

const (
	// PointsPerCorrect is the fixed award for a correct answer.
	PointsPerCorrect = 10

	cluesPerQuestion   = 2
	optionsPerQuestion = 4
)

// QuizService assembles randomized multiple-choice questions and verifies
// submitted answers.
type QuizService struct {
	catalog      CatalogRepository
	destinations DestinationRepository
	scorer       Scorer
	rnd          *rand.Rand
}

// NewQuizService builds a quiz engine. The random source is injected so tests
// can seed it deterministically; it must be safe for concurrent use when
// requests run in parallel (use NewSeededRand). scorer may be nil to disable
// score tracking.
func NewQuizService(catalog CatalogRepository, destinations DestinationRepository, scorer Scorer, rnd *rand.Rand) *QuizService {
	return &QuizService{
		catalog:      catalog,
		destinations: destinations,
		scorer:       scorer,
		rnd:          rnd,
	}
}

// GetQuestion picks one destination uniformly at random, mixes its name with
// up to three decoy names and samples min(2, k) of its clues. The canonical
// name never appears outside the shuffled option list.
func (s *QuizService) GetQuestion(ctx context.Context) (domain.Question, error) {
	refs, err := s.catalog.List(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	if len(refs) == 0 {
		return domain.Question{}, domain.ErrNoDestinations
	}

	target := refs[s.rnd.Intn(len(refs))]

	dest, err := s.destinations.ByID(ctx, target.ID)
	if err != nil {
		return domain.Question{}, err
	}

	options := append(s.decoyNames(refs, dest.ID, dest.Name), dest.Name)
	s.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return domain.Question{
		DestinationID: dest.ID,
		Alias:         dest.Alias,
		Clues:         s.sampleClues(dest.Clues),
		Options:       options,
	}, nil
}

// VerifyAnswer compares the submission against the destination's canonical
// name, case-insensitively and without fuzzy matching. When username is
// non-empty the scoring side effect completes before the result is returned;
// an unknown username skips scoring silently.
func (s *QuizService) VerifyAnswer(ctx context.Context, destinationID, answer, username string) (domain.AnswerResult, error) {
	if _, err := uuid.Parse(destinationID); err != nil {
		return domain.AnswerResult{}, fmt.Errorf("%w: malformed destination id %q", domain.ErrInvalidArgument, destinationID)
	}

	dest, err := s.destinations.ByID(ctx, destinationID)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	correct := strings.EqualFold(answer, dest.Name)
	points := 0
	if correct {
		points = PointsPerCorrect
	}

	if username != "" && s.scorer != nil {
		if err := s.scorer.Award(ctx, username, correct); err != nil {
			return domain.AnswerResult{}, err
		}
	}

	return domain.AnswerResult{
		Correct:       correct,
		CorrectAnswer: dest.Name,
		FunFact:       s.pickFunFact(dest.FunFacts),
		PointsEarned:  points,
	}, nil
}

// decoyNames returns up to three names drawn from the catalog. The target and
// any name that folds to an already-picked one are skipped, so the correct
// name can only appear once even when destinations share a canonical name.
func (s *QuizService) decoyNames(refs []domain.DestinationRef, targetID, targetName string) []string {
	others := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.ID != targetID {
			others = append(others, ref.Name)
		}
	}
	s.rnd.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	seen := map[string]bool{strings.ToLower(targetName): true}
	names := make([]string, 0, optionsPerQuestion-1)
	for _, name := range others {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
		if len(names) == optionsPerQuestion-1 {
			break
		}
	}
	return names
}

// sampleClues draws min(2, k) clues without replacement.
func (s *QuizService) sampleClues(clues []string) []string {
	n := cluesPerQuestion
	if len(clues) < n {
		n = len(clues)
	}
	if n == 0 {
		return nil
	}
	picked := make([]string, len(clues))
	copy(picked, clues)
	s.rnd.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}

// pickFunFact returns one fun fact uniformly at random, or "" when the
// destination has none recorded.
func (s *QuizService) pickFunFact(facts []string) string {
	if len(facts) == 0 {
		return ""
	}
	return facts[s.rnd.Intn(len(facts))]
}
