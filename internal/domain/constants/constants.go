// Package constants holds values shared across layers.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Event publisher providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderKafka  = "kafka"
)

// Database drivers
const (
	DatabaseDriverPostgres    = "postgres"
	DatabaseDriverPostgresURL = "postgres-url"
	DatabaseDriverSQLite      = "sqlite"
)

// Image storage providers
const (
	StorageProviderBlob = "blob"
	StorageProviderS3   = "s3"
)

// Cart pricing modes
const (
	// CartPricingLegacy compounds: total = (total + unitPrice) * quantity, and
	// removing items keeps the total.
	CartPricingLegacy = "legacy"
	// CartPricingLineSum adds unitPrice * quantity and recomputes on removal.
	CartPricingLineSum = "line_sum"
)

// Roles
const (
	RoleCustomer = "customer"
)
