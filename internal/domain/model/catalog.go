package model

import "time"

type Stack struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Topic struct {
	ID        int64  `json:"id"`
	StackID   int64  `json:"stackId"`
	Title     string `json:"title"`
	SortOrder int    `json:"sortOrder"`
}

type Video struct {
	ID        int64  `json:"id"`
	TopicID   int64  `json:"topicId"`
	Title     string `json:"title"`
	YoutubeID string `json:"youtubeId"`
	Duration  int    `json:"duration"` // seconds
	SortOrder int    `json:"sortOrder"`
}

// StackRef is the minimal stack shape embedded in other payloads.
type StackRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// StackSummary is a catalog list item annotated with content counts.
type StackSummary struct {
	Stack
	TopicCount int `json:"topicCount"`
	VideoCount int `json:"videoCount"`
}

// AnnotatedVideo carries a per-viewer completion flag when the catalog is
// read by an authenticated user; IsCompleted stays absent for anonymous reads.
type AnnotatedVideo struct {
	Video
	IsCompleted *bool `json:"isCompleted,omitempty"`
}

type TopicWithVideos struct {
	Topic
	Videos []AnnotatedVideo `json:"videos"`
}

type ProgressSummary struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// StackDetail is the nested stack payload with computed totals.
type StackDetail struct {
	Stack
	Topics        []TopicWithVideos `json:"topics"`
	TotalVideos   int               `json:"totalVideos"`
	TotalDuration int               `json:"totalDuration"`
	Progress      *ProgressSummary  `json:"progress,omitempty"`
}

// AdminTopic is the admin topic listing projection.
type AdminTopic struct {
	Topic
	Stack      StackRef `json:"stack"`
	VideoCount int      `json:"videoCount"`
}

type AdminVideoTopic struct {
	ID    int64    `json:"id"`
	Title string   `json:"title"`
	Stack StackRef `json:"stack"`
}

// AdminVideo is the admin video listing projection.
type AdminVideo struct {
	Video
	Topic AdminVideoTopic `json:"topic"`
}
