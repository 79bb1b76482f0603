package config

import "time"

const (
	// Identifiers
	IDPrefix      = "COMP"
	IDRandomBound = 1000
	IDMaxAttempts = 5

	// Storage
	DefaultStorageKey = "complaints"
	CacheKeyPrefix    = "complaint:"

	// Photo
	DefaultPhotoMaxBytes = 5 << 20

	// Timeline offsets from the submission instant
	ReviewOffset     = 24 * time.Hour
	ActionOffset     = 48 * time.Hour
	ResolutionOffset = 72 * time.Hour
	RejectionOffset  = 48 * time.Hour

	// Badge colours
	DefaultBadgeColor = "bg-gray-500"
)

// StatusColors is keyed by the lower-cased status.
var StatusColors = map[string]string{
	"completed":   "bg-green-500",
	"in progress": "bg-blue-500",
	"pending":     "bg-yellow-500",
	"rejected":    "bg-red-500",
}

// PriorityColors is keyed by the lower-cased priority.
var PriorityColors = map[string]string{
	"urgent": "bg-red-500",
	"high":   "bg-orange-500",
	"medium": "bg-yellow-500",
	"low":    "bg-green-500",
}
