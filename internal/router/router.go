package router

import (
	"net/http"
	"time"

	_ "pet-care-log/docs"
	"pet-care-log/internal/adapters/local"
	mem "pet-care-log/internal/adapters/storage/memory"
	"pet-care-log/internal/adapters/storage/sqlstore"
	"pet-care-log/internal/calendar"
	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa SQLite/Postgres. Si no, in-memory.
	DB *sqlstore.DB

	// Zona local para el calendario. nil => time.Local.
	Location *time.Location

	Logger logger.Logger
}

// Services agrupa los services por módulo sobre el backend elegido.
// El CLI en modo --db arma los mismos services sin pasar por HTTP.
type Services struct {
	Feeding     *feeding.Service
	Pets        *pets.Service
	Maintenance *maintenance.Service
}

func NewServices(db *sqlstore.DB, loc *time.Location) Services {
	var (
		feedingRepo     feeding.Repository
		petRepo         pets.Repository
		maintenanceRepo maintenance.Repository
	)

	if db != nil {
		feedingRepo = sqlstore.NewFeedingRepo(db)
		petRepo = sqlstore.NewPetsRepo(db)
		maintenanceRepo = sqlstore.NewMaintenanceRepo(db)
	} else {
		feedingRepo = mem.NewFeedingRepo()
		petRepo = mem.NewPetRepo()
		maintenanceRepo = mem.NewMaintenanceRepo()
	}

	return Services{
		Feeding:     feeding.NewService(feedingRepo, loc),
		Pets:        pets.NewService(petRepo, loc),
		Maintenance: maintenance.NewService(maintenanceRepo),
	}
}

func NewRouter(opts Options) http.Handler {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	svc := NewServices(opts.DB, loc)

	// Rutas por módulo
	feeding.RegisterRoutes(r, svc.Feeding, log)
	pets.RegisterRoutes(r, svc.Pets, log)
	maintenance.RegisterRoutes(r, svc.Maintenance, log)
	calendar.RegisterRoutes(r, local.New(svc.Feeding, svc.Pets, svc.Maintenance), loc, log)

	return r
}
