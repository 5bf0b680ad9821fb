package repositories

// RepositoryProvider bundles every repository implementation so wiring stays
// in one place.
type RepositoryProvider struct {
	UserRepo      UserRepository
	LocationRepo  LocationRepository
	ActivityRepo  ActivityRepository
	HayRepo       HayRepository
	ReportingRepo ReportingRepository
}
