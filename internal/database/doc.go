// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling and tern for embedded migrations.
// Repositories implement domain interfaces: ServiceRepository,
// AdminRepository, EnquiryRepository. The catalog order lives in the
// sort_order column and is maintained transactionally.
package database
