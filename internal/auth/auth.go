package auth

// Service answers admin allow-list membership. The set comes from
// configuration and never changes at runtime.
type Service struct {
	admins map[int64]struct{}
}

func New(adminIDs []int64) *Service {
	s := &Service{admins: make(map[int64]struct{}, len(adminIDs))}
	for _, id := range adminIDs {
		s.admins[id] = struct{}{}
	}
	return s
}

func (s *Service) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}
