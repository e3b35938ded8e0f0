// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel and AggregateModel
// - catalog.go: products, production areas and their join table
// - sales.go: companies, customer orders and order lines
// - inventory.go: warehouses, stock rows and the stock ledger
// - production.go: production orders, line items and the pivot snapshot tables
package models
