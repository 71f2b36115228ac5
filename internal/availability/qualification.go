package availability

import "github.com/julnac/salon-manager/backend/internal/domain"

// QualifiedForAll returns the ids of staff members holding a qualification for every
// service in serviceIDs, in order of their first qualification record. Partial coverage
// does not count.
func QualifiedForAll(quals []domain.Qualification, serviceIDs []int64) []int64 {
	wanted := make(map[int64]struct{}, len(serviceIDs))
	for _, id := range serviceIDs {
		wanted[id] = struct{}{}
	}
	if len(wanted) == 0 {
		return nil
	}

	covered := make(map[int64]map[int64]struct{}) // staffID -> distinct serviceIDs
	order := make([]int64, 0)
	for _, q := range quals {
		if _, ok := wanted[q.ServiceID]; !ok {
			continue
		}
		services, exists := covered[q.StaffID]
		if !exists {
			services = make(map[int64]struct{})
			covered[q.StaffID] = services
			order = append(order, q.StaffID)
		}
		services[q.ServiceID] = struct{}{}
	}

	qualified := make([]int64, 0, len(order))
	for _, staffID := range order {
		if len(covered[staffID]) == len(wanted) {
			qualified = append(qualified, staffID)
		}
	}
	return qualified
}
