package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Offers        *OfferRepository
	Users         *UserRepository
	Voivodeships  *VoivodeshipRepository
	RevokedTokens *RevokedTokenRepository
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Offers:        NewOfferRepository(pool),
		Users:         NewUserRepository(pool),
		Voivodeships:  NewVoivodeshipRepository(pool),
		RevokedTokens: NewRevokedTokenRepository(pool),
	}
}
