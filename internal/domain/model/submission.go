package model

import "time"

type SubmissionStatus string

const (
	SubmissionPending SubmissionStatus = "PENDING"
	SubmissionPass    SubmissionStatus = "PASS"
	SubmissionFail    SubmissionStatus = "FAIL"
)

type Submission struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	StackID   int64            `json:"stackId"`
	RepoLink  string           `json:"repoLink"`
	Status    SubmissionStatus `json:"status"`
	Feedback  *string          `json:"feedback,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Stack     *StackRef        `json:"stack,omitempty"` // For display
	User      *UserRef         `json:"user,omitempty"`  // Admin listings only
}

type SubmissionCounts struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
}
