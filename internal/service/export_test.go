package service

// CachedEditors reports how many device editors svc holds in memory
func CachedEditors(svc DashboardService) int {
	s := svc.(*dashboardService)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.editors)
}
