package api

import (
	"os"

	"github.com/redis/go-redis/v9"

	"skybound/flightline/internal/common"
	"skybound/flightline/internal/db"
	"skybound/flightline/internal/db/repositories"
	"skybound/flightline/internal/logging"
	"skybound/flightline/internal/metrics"
	"skybound/flightline/internal/services"
)

type Repositories struct {
	Aircraft    *repositories.AircraftRepository
	Components  *repositories.ComponentRepository
	Visits      *repositories.VisitRepository
	Members     *repositories.MemberRepository
	Memberships *repositories.MembershipRepository
	Credentials *repositories.CredentialRepository
	Enrollments *repositories.EnrollmentRepository
	Ledger      *repositories.LedgerRepository
	Schools     *repositories.SchoolRepository
	Keys        *repositories.KeysRepo
}

type Services struct {
	Redis      *redis.Client
	Cache      common.CacheInterface
	Queue      *common.VisitEventQueue
	Conf       *common.SchoolConfigService
	Session    *common.SessionService
	URLSigner  *common.URLSignerService
	Components *services.ComponentService
	Visits     *services.VisitService
	Members    *services.MemberService
	Statements *services.StatementService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Aircraft:    repositories.NewAircraftRepository(db.DB),
		Components:  repositories.NewComponentRepository(db.DB),
		Visits:      repositories.NewVisitRepository(db.DB),
		Members:     repositories.NewMemberRepository(db.DB),
		Memberships: repositories.NewMembershipRepository(db.DB),
		Credentials: repositories.NewCredentialRepository(db.DB),
		Enrollments: repositories.NewEnrollmentRepository(db.DB),
		Ledger:      repositories.NewLedgerRepository(db.DB),
		Schools:     repositories.NewSchoolRepository(db.DB),
		Keys:        repositories.NewApiKeysRepo(db.DB),
	}

	redisClient := common.NewRedisClient()

	// Redis-backed cache with an in-memory fallback for local development.
	var cache common.CacheInterface
	if redisCache, err := common.NewRedisCacheService(); err == nil {
		cache = redisCache
	} else {
		logging.Warn("Redis cache unavailable, falling back to in-memory", "error", err)
		cache = common.NewCacheService(300, 600)
	}

	confSvc := common.NewSchoolConfigService(repos.Schools, cache)
	queue := common.NewVisitEventQueue(redisClient)
	sessionSvc := common.NewSessionService(redisClient)
	signer := common.NewURLSignerService([]byte(os.Getenv("LINK_SIGNING_SECRET")), redisClient)

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	svcs := &Services{
		Redis:      redisClient,
		Cache:      cache,
		Queue:      queue,
		Conf:       confSvc,
		Session:    sessionSvc,
		URLSigner:  signer,
		Components: services.NewComponentService(repos.Components, repos.Aircraft, confSvc, cache),
		Visits:     services.NewVisitService(db.PgDB, queue, confSvc),
		Members:    services.NewMemberService(repos.Members, repos.Memberships, repos.Credentials, repos.Enrollments, confSvc),
		Statements: services.NewStatementService(repos.Ledger, repos.Members, confSvc, signer, sessionSvc, baseURL),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
