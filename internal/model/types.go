// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	ParagraphLength int
	Duration        time.Duration
	Vocabulary      []string
	VocabularyPath  string
	History         bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
	Color       bool
}

// Result captures a timed-out typing session.
type Result struct {
	ID              int64
	SessionID       string
	StartedAt       time.Time
	EndedAt         time.Time
	ParagraphLength int
	DurationMs      int64
	WordCount       int
	CorrectChars    int
	TotalChars      int
	WPM             float64
	Accuracy        float64
}
