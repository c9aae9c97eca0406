package config

import "time"

// Application-wide constants organized by domain

// Database and performance
const (
	DefaultQueryTimeout = 30 * time.Second
	RankingQueryTimeout = 10 * time.Second
	NetworkDialTimeout  = 5 * time.Second
)

// Pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Ranking
const (
	MaxRankingLimit     = 100
	DefaultRankingLimit = 10
	RankingCacheSize    = 64
	RankingCacheTTL     = 30 * time.Second
)

// Badge grant
const (
	// UnlockedChallengeLimit bounds the "unlocked content" list returned
	// alongside a fresh badge grant.
	UnlockedChallengeLimit = 5
)
