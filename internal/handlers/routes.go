// internal/handlers/routes.go
package handlers

import "net/http"

const apiV1 = "/api/v1"

// Routes groups the handlers served by the API
type Routes struct {
	POS       *POSHandler
	Inventory *InventoryHandler
	Import    *ImportHandler
	Export    *ExportHandler
	Health    *HealthHandler
}

// Register mounts every endpoint on mux
func (rt Routes) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", rt.Health.Health)
	mux.HandleFunc("GET /health/live", rt.Health.Liveness)
	mux.HandleFunc("GET /health/ready", rt.Health.Readiness)

	// Terminal
	mux.HandleFunc("GET "+apiV1+"/state", rt.POS.GetState)
	mux.HandleFunc("PUT "+apiV1+"/view", rt.POS.SwitchView)

	// Catalog
	mux.HandleFunc("GET "+apiV1+"/catalog", rt.POS.ListCatalog)
	mux.HandleFunc("GET "+apiV1+"/catalog/low-stock", rt.POS.ListLowStock)
	mux.HandleFunc("POST "+apiV1+"/catalog/refresh", rt.POS.RefreshCatalog)

	// Cart and checkout
	mux.HandleFunc("GET "+apiV1+"/cart", rt.POS.GetCart)
	mux.HandleFunc("POST "+apiV1+"/cart/items", rt.POS.AddToCart)
	mux.HandleFunc("DELETE "+apiV1+"/cart/items/{id}", rt.POS.RemoveFromCart)
	mux.HandleFunc("POST "+apiV1+"/scans", rt.POS.Scan)
	mux.HandleFunc("POST "+apiV1+"/checkout", rt.POS.Checkout)

	// Inventory editor
	mux.HandleFunc("POST "+apiV1+"/inventory/editor", rt.Inventory.OpenEditor)
	mux.HandleFunc("DELETE "+apiV1+"/inventory/editor", rt.Inventory.CloseEditor)
	mux.HandleFunc("PUT "+apiV1+"/inventory", rt.Inventory.SaveMedicine)

	// Bulk import and export
	mux.HandleFunc("POST "+apiV1+"/inventory/import", rt.Import.ImportInventory)
	mux.HandleFunc("POST "+apiV1+"/inventory/pricelist", rt.Import.ImportPriceList)
	mux.HandleFunc("POST "+apiV1+"/inventory/export", rt.Export.ExportInventory)
	mux.HandleFunc("GET "+apiV1+"/inventory/exports/{job_id}", rt.Export.GetExport)
	mux.HandleFunc("POST "+apiV1+"/inventory/low-stock-report", rt.Export.ReportLowStock)
}
