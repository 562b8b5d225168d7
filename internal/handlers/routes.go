package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, studentHandler *StudentHandler, productHandler *ProductHandler, consumptionHandler *ConsumptionHandler, reportHandler *ReportHandler, dashboardHandler *DashboardHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Cantina API", "1.0.0")
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Students
	huma.Get(api, "/alunos", studentHandler.HandleList)
	huma.Post(api, "/alunos", studentHandler.HandleCreate)
	huma.Get(api, "/alunos/{id}", studentHandler.HandleGet)
	huma.Put(api, "/alunos/{id}", studentHandler.HandleUpdate)
	huma.Delete(api, "/alunos/{id}", studentHandler.HandleDelete)

	// Products
	huma.Get(api, "/produtos", productHandler.HandleList)
	huma.Post(api, "/produtos", productHandler.HandleCreate)
	huma.Get(api, "/produtos/{id}", productHandler.HandleGet)
	huma.Put(api, "/produtos/{id}", productHandler.HandleUpdate)
	huma.Delete(api, "/produtos/{id}", productHandler.HandleDelete)

	// Consumptions
	huma.Get(api, "/consumos", consumptionHandler.HandleList)
	huma.Post(api, "/consumos", consumptionHandler.HandleCreate)
	huma.Post(api, "/consumos/registrar", consumptionHandler.HandleRegisterBatch)

	// Reports
	huma.Get(api, "/relatorios/mensal/{ano}/{mes}", reportHandler.HandleMonthly)
	huma.Get(api, "/relatorios/detalhado/{alunoId}/{ano}/{mes}", reportHandler.HandleStudentDetail)
	r.Get("/relatorios/mensal/{ano}/{mes}/csv", reportHandler.ServeCSV)

	// Dashboard
	huma.Get(api, "/dashboard/estatisticas", dashboardHandler.HandleStats)
}
