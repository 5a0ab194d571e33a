package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultInterviewTitle is substituted when a blank title is submitted.
const DefaultInterviewTitle = "Untitled Interview"

const (
	MinAttempts = 1
	MaxAttempts = 10
)

// InterviewSettings is stored as a single JSONB column. The JSON keys are part
// of the persisted format, keep them stable.
type InterviewSettings struct {
	Questions    []string `json:"questions"`
	AllowRetakes bool     `json:"allowRetakes"`
	MaxAttempts  int      `json:"maxAttempts"`
}

type Interview struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	CreatorID uuid.UUID         `json:"creator_id" db:"creator_id"`
	Title     string            `json:"title" db:"title"`
	Settings  InterviewSettings `json:"settings" db:"settings"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
}

// NormalizeTitle trims the submitted title and falls back to the default label
// when nothing is left.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultInterviewTitle
	}
	return title
}

// NormalizeSettings applies the creation-time rules: blank questions are
// dropped (an all-blank set collapses to a single empty placeholder so an
// interview always has at least one question), and maxAttempts is forced to 1
// unless retakes are allowed, in which case it is clamped to [1,10].
func NormalizeSettings(questions []string, allowRetakes bool, maxAttempts int) InterviewSettings {
	kept := make([]string, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q) != "" {
			kept = append(kept, q)
		}
	}
	if len(kept) == 0 {
		kept = []string{""}
	}

	attempts := 1
	if allowRetakes {
		attempts = min(max(maxAttempts, MinAttempts), MaxAttempts)
	}

	return InterviewSettings{
		Questions:    kept,
		AllowRetakes: allowRetakes,
		MaxAttempts:  attempts,
	}
}

type CreateInterviewReq struct {
	Title        string   `json:"title"`
	Questions    []string `json:"questions"`
	AllowRetakes bool     `json:"allow_retakes"`
	MaxAttempts  int      `json:"max_attempts"`
}

// InterviewDetail is the review payload: the interview plus its applications,
// most recent first. An empty application list is a valid result.
type InterviewDetail struct {
	Interview    Interview     `json:"interview"`
	Applications []Application `json:"applications"`
}
