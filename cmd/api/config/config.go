package config

import "time"

type Config struct {
	DailyAnalysisLimit int
	UploadDir          string
	MaxUploadSize      int64
	VisionModel        string
	TokenExpiry        time.Duration
}

func NewConfig() *Config {
	return &Config{
		DailyAnalysisLimit: 5,
		UploadDir:          "uploads",
		MaxUploadSize:      5 * 1024 * 1024,
		VisionModel:        "gpt-4.1-mini",
		TokenExpiry:        24 * time.Hour,
	}
}
