// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `make mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/catalog_store.go -destination=catalog_store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/scanner.go -destination=scanner_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/receipt.go -destination=receipt_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/confirmer.go -destination=confirmer_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/task_queue.go -destination=task_queue_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/object_storage.go -destination=object_storage_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/database.go -destination=database_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/pos_service.go -destination=pos_service_mock.go -package=mocks
