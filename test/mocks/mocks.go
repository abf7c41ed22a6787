// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `go generate ./test/mocks`.
package mocks

//go:generate mockgen -source=../../internal/core/ports/snapshot_store.go -destination=snapshot_store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/suggester.go -destination=suggester_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/archive.go -destination=archive_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/inventory_service.go -destination=inventory_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/database.go -destination=database_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/history_service.go -destination=history_service_mock.go -package=mocks
