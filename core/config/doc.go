// Package config provides configuration management for the data reconciler.
//
// Values come from environment variables, optionally seeded from a .env file,
// with defaults taken from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server host, port and API key
//   - Database: local SQL connection (mysql or sqlite)
//   - Auth: OAuth2 client credentials for the remote API
//   - API: remote base URI, path, proxy and pagination parameter names
//   - Validation: profile directory, page size, record target and report output
//   - Storage: S3/MinIO settings for report upload
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.BaseURI)
package config
