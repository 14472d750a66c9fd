// Package profile loads per-table validation profiles.
//
// A profile bundles everything one reconciliation run needs to know about a
// table: the SQL query (inline or in a file), the local primary-key column, the
// remote endpoint, the mapping file and where records, total count and primary
// key live in the remote response.
//
// Profiles are read with Viper from <resource_dir>/<name>.<ext>, so any format
// Viper understands works; YAML is the convention.
//
//	name: assets
//	sql_file: assets.sql
//	primary_key: asset_id
//	endpoint: /assets
//	mapping_file: assets_mapping.properties
//	response_primary_key: assetId
//
// Relative paths are resolved against the resource directory.
package profile
