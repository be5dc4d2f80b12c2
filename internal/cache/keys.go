package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// AnalysisKey caches an analysis outcome for one (voice, version, content) triple.
func AnalysisKey(voiceID uuid.UUID, version int, contentHash string) string {
	return fmt.Sprintf("analysis:%s:%d:%s", voiceID, version, contentHash)
}

func RateLimitKey(userID string) string {
	return fmt.Sprintf("ratelimit:%s", userID)
}
