package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles all repositories over the shared connection pool.
type Repositories struct {
	Students *StudentRepository
	Admins   *AdminRepository
	Accounts *AccountRepository
}

// NewRepositories creates all repositories.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Students: NewStudentRepository(db),
		Admins:   NewAdminRepository(db),
		Accounts: NewAccountRepository(db),
	}
}
