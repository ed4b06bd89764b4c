package faqs

import (
	"time"

	"github.com/lucabelezal/cardlimit-service/internal/models"
)

func seed() []models.FAQ {
	return []models.FAQ{
		{
			ID:           "faq-1",
			Question:     "How do I increase my card limit?",
			Answer:       "Open the limit screen, enter the new amount and confirm. The new limit must stay between the minimum allowed by your plan and the maximum approved for your account.",
			Category:     "limits",
			Tags:         []string{"limit", "increase"},
			HelpfulCount: 42,
			CreatedAt:    time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2024, 3, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:           "faq-2",
			Question:     "Why can't I set my limit below a certain value?",
			Answer:       "The limit can never drop below what you have already spent in the current cycle, or below the product minimum. Pay down your balance first and try again.",
			Category:     "limits",
			Tags:         []string{"limit", "minimum", "balance"},
			HelpfulCount: 31,
			CreatedAt:    time.Date(2024, 1, 12, 11, 15, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2024, 1, 12, 11, 15, 0, 0, time.UTC),
		},
		{
			ID:           "faq-3",
			Question:     "When does my available amount reset?",
			Answer:       "The used amount resets at the start of each statement cycle. Your available amount is always the current limit minus what you have used.",
			Category:     "billing",
			Tags:         []string{"cycle", "statement", "available"},
			HelpfulCount: 18,
			CreatedAt:    time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2024, 2, 20, 16, 45, 0, 0, time.UTC),
		},
		{
			ID:           "faq-4",
			Question:     "Is my limit change applied immediately?",
			Answer:       "Yes. Once the new amount passes validation it takes effect right away and you receive a confirmation notification.",
			Category:     "limits",
			Tags:         []string{"limit", "notification"},
			HelpfulCount: 25,
			CreatedAt:    time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:           "faq-5",
			Question:     "What happens if a purchase exceeds my available amount?",
			Answer:       "The purchase is declined. Increase your limit or wait for the statement cycle to reset your used amount.",
			Category:     "billing",
			Tags:         []string{"purchase", "declined", "available"},
			HelpfulCount: 12,
			CreatedAt:    time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC),
		},
		{
			ID:           "faq-6",
			Question:     "Who can see or change my card limit?",
			Answer:       "Only you, after signing in. Limit changes require an authenticated session and are always confirmed by email when notifications are enabled.",
			Category:     "security",
			Tags:         []string{"security", "account", "email"},
			HelpfulCount: 7,
			CreatedAt:    time.Date(2024, 3, 20, 9, 45, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}
