// internal/handlers/router.go
package handlers

import "net/http"

const apiV1 = "/api/v1"

// Routes groups the handlers mounted by RegisterRoutes.
// History and Health are optional.
type Routes struct {
	Products  *ProductHandler
	Session   *SessionHandler
	Dashboard *DashboardHandler
	History   *HistoryHandler
	Health    *HealthHandler
}

// RegisterRoutes mounts the API on mux using method-specific patterns
func RegisterRoutes(mux *http.ServeMux, rt Routes) {
	if rt.Health != nil {
		mux.HandleFunc("GET /health", rt.Health.Health)
		mux.HandleFunc("GET /ready", rt.Health.Readiness)
		mux.HandleFunc("GET "+apiV1+"/health", rt.Health.Health)
	}

	// Catalog
	mux.HandleFunc("GET "+apiV1+"/products", rt.Products.ListProducts)
	mux.HandleFunc("POST "+apiV1+"/products", rt.Products.AddProduct)
	mux.HandleFunc("POST "+apiV1+"/products/suggest", rt.Products.Suggest)
	mux.HandleFunc("GET "+apiV1+"/products/{id}", rt.Products.GetProduct)

	// Current session
	mux.HandleFunc("GET "+apiV1+"/session", rt.Session.GetSession)
	mux.HandleFunc("GET "+apiV1+"/session/records/{productId}", rt.Session.GetRecord)
	mux.HandleFunc("PUT "+apiV1+"/session/records/{productId}", rt.Session.UpdateRecord)
	mux.HandleFunc("POST "+apiV1+"/session/records/{productId}/full-bottles", rt.Session.AdjustFullBottles)
	mux.HandleFunc("PUT "+apiV1+"/session/records/{productId}/partial-bottle", rt.Session.SetPartialBottle)
	mux.HandleFunc("POST "+apiV1+"/session/finish", rt.Session.FinishSession)
	mux.HandleFunc("POST "+apiV1+"/session/reset", rt.Session.ResetSession)

	mux.HandleFunc("GET "+apiV1+"/dashboard", rt.Dashboard.GetDashboard)

	if rt.History != nil {
		mux.HandleFunc("GET "+apiV1+"/history", rt.History.ListHistory)
		mux.HandleFunc("GET "+apiV1+"/history/{id}", rt.History.GetHistory)
		mux.HandleFunc("GET "+apiV1+"/history/{id}/export", rt.History.ExportHistory)
	}
}
