package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"lead-connector/internal/infra/handlers"
)

type Routes struct {
	Mux             *mux.Router
	LeadHandlers    *handlers.LeadHandlers
	SummaryHandlers *handlers.SummaryHandlers
	QueryHandlers   *handlers.QueryHandlers
	LogHandlers     *handlers.LogHandlers
}

func NewRoutes(
	mux *mux.Router,
	leadHandlers *handlers.LeadHandlers,
	summaryHandlers *handlers.SummaryHandlers,
	queryHandlers *handlers.QueryHandlers,
	logHandlers *handlers.LogHandlers,
) *Routes {
	return &Routes{mux, leadHandlers, summaryHandlers, queryHandlers, logHandlers}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/save-lead", r.LeadHandlers.SaveLead).Methods(http.MethodPost)
	r.Mux.HandleFunc("/get-lead/{phone}", r.LeadHandlers.GetLead).Methods(http.MethodGet)
	r.Mux.HandleFunc("/generate-summary", r.SummaryHandlers.GenerateSummaryBatch).Methods(http.MethodPost)
	r.Mux.HandleFunc("/ask", r.QueryHandlers.Ask).Methods(http.MethodPost)
	r.Mux.HandleFunc("/logs", r.LogHandlers.Tail).Methods(http.MethodGet)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
