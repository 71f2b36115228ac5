package availability

import "github.com/julnac/salon-manager/backend/internal/domain"

// TotalDuration is the contiguous time needed to perform all services back-to-back.
func TotalDuration(services []*domain.ServiceOffer) int {
	total := 0
	for _, s := range services {
		total += int(s.DurationMinutes)
	}
	return total
}
