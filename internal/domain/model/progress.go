package model

import "time"

type Progress struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	VideoID     int64      `json:"videoId"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// StackProgress is one dashboard row: a stack with the viewer's counts.
type StackProgress struct {
	ID              int64  `json:"id"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Thumbnail       string `json:"thumbnail"`
	TotalVideos     int    `json:"totalVideos"`
	CompletedVideos int    `json:"completedVideos"`
	ProgressPercent int    `json:"progressPercent"`
}

type DashboardOverview struct {
	TotalVideos     int `json:"totalVideos"`
	TotalCompleted  int `json:"totalCompleted"`
	OverallProgress int `json:"overallProgress"`
}

type Dashboard struct {
	Overview          DashboardOverview `json:"overview"`
	Stacks            []StackProgress   `json:"stacks"`
	Submissions       []Submission      `json:"submissions"`
	CompletedVideoIDs []int64           `json:"completedVideoIds"`
}
