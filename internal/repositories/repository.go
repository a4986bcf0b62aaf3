package repositories

import "context"

// Repository aggregates the attendance-domain repositories.
type Repository interface {
	// Identity store
	Account() AccountRepository

	// Roster store
	Teacher() TeacherRepository
	Student() StudentRepository

	// Attendance ledger
	Attendance() AttendanceRepository

	// Read-only cross-store aggregation
	Stats() StatsRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
