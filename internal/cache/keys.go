package cache

import "fmt"

func EnrichmentStatusKey(postingID string) string {
	return fmt.Sprintf("enrichment:%s", postingID)
}

func RateLimitKey(clientID string) string {
	return fmt.Sprintf("ratelimit:%s", clientID)
}
