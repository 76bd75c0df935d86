package services

// RateLimitConfig bounds AI generation requests per user per UTC day.
type RateLimitConfig struct {
	DailyLimit int
}

// GetRateLimitConfig returns the generation quota for a user. The limit is
// deliberately the same for free and Pro tiers to keep model costs bounded.
func GetRateLimitConfig(isPro bool) RateLimitConfig {
	return RateLimitConfig{DailyLimit: 20}
}

// ExceedsDailyLimit reports whether count has reached the daily limit.
func ExceedsDailyLimit(count, limit int) bool {
	return count >= limit
}

// DailyStudySessionLimit caps study sessions per UTC day for plans without
// the unlimited-sessions entitlement.
const DailyStudySessionLimit = 40
