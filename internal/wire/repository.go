package wire

import (
	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"

	chrepo "github.com/haikalvidya/lmnr/internal/repository/clickhouse"
	pgrepo "github.com/haikalvidya/lmnr/internal/repository/postgres"
)

// RepositorySet provides all repository instances.
var RepositorySet = wire.NewSet(
	ProvideEvaluationRepository,
	ProvideEvaluationScoreRepository,
)

// ProvideEvaluationRepository creates a new EvaluationRepository.
func ProvideEvaluationRepository(db *pgxpool.Pool) *pgrepo.EvaluationRepository {
	return pgrepo.NewEvaluationRepository(db)
}

// ProvideEvaluationScoreRepository creates a new EvaluationScoreRepository.
func ProvideEvaluationScoreRepository(conn clickhouse.Conn) *chrepo.EvaluationScoreRepository {
	return chrepo.NewEvaluationScoreRepository(conn)
}
