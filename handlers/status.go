package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"mubot/services"
)

// StatusHandler serves the operational HTTP surface: liveness and the
// command catalog.
type StatusHandler struct {
	prefix  string
	routers []services.RouterService
}

// NewStatusHandler builds the status surface over any number of gateway
// routers; the catalog comes from the first one since every gateway
// registers the same command surface.
func NewStatusHandler(prefix string, routers ...services.RouterService) *StatusHandler {
	return &StatusHandler{prefix: prefix, routers: routers}
}

type commandCatalogEntry struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Brief   string   `json:"brief"`
	Usage   string   `json:"usage"`
}

func (h *StatusHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		log.Printf("❌ Failed to write health check response: %v", err)
	}
}

func (h *StatusHandler) HandleCommands(w http.ResponseWriter, r *http.Request) {
	catalog := []commandCatalogEntry{}
	if len(h.routers) > 0 {
		for _, spec := range h.routers[0].Commands() {
			catalog = append(catalog, commandCatalogEntry{
				Name:    spec.Name,
				Aliases: spec.Aliases,
				Brief:   spec.Brief,
				Usage:   spec.UsageLine(h.prefix),
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{"commands": catalog}); err != nil {
		log.Printf("❌ Failed to write command catalog response: %v", err)
	}
}

func (h *StatusHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	router.HandleFunc("/commands", h.HandleCommands).Methods("GET")
	log.Printf("✅ Status endpoints registered")
}
