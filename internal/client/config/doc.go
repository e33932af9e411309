// Package config loads runtime configuration for the textdesk clients.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-e string   base URL of the generation/translation/resize endpoints
//	-k string   secret used to sign outbound bearer tokens
//	-s string   draft store driver: sqlite, postgres or redis
//	-d string   draft store DSN
//	-a string   listen address of the web form
//	-o string   export directory for resized images
//	-b string   S3 bucket for exports (enables S3 export)
//	-g string   S3 region
//	-x string   S3 base endpoint
//	-u string   S3 access key
//	-p string   S3 secret key
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "endpoint_base_url": "http://127.0.0.1:5000",
//	  "store_driver": "sqlite",
//	  "store_dsn": "textdesk.db",
//	  "web_addr": "127.0.0.1:8080",
//	  "export_dir": "exports",
//	  "log_level": "info"
//	}
//
// Keys missing from the JSON file leave the defaults untouched.
package config
