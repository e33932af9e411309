package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/textdesk/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell "absent" apart from "empty" so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointBaseURL *string `json:"endpoint_base_url"`
	EndpointSecret  *string `json:"endpoint_secret"`
	StoreDriver     *string `json:"store_driver"`
	StoreDSN        *string `json:"store_dsn"`
	WebAddr         *string `json:"web_addr"`
	ExportDir       *string `json:"export_dir"`
	S3Bucket        *string `json:"s3_bucket"`
	S3Region        *string `json:"s3_region"`
	S3Endpoint      *string `json:"s3_endpoint"`
	S3User          *string `json:"s3_user"`
	S3Password      *string `json:"s3_password"`
	LogLevel        *string `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing happens. Read or unmarshal errors
// panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.EndpointBaseURL, jc.EndpointBaseURL)
	set(&cfg.EndpointSecret, jc.EndpointSecret)
	set(&cfg.StoreDriver, jc.StoreDriver)
	set(&cfg.StoreDSN, jc.StoreDSN)
	set(&cfg.WebAddr, jc.WebAddr)
	set(&cfg.ExportDir, jc.ExportDir)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3Endpoint, jc.S3Endpoint)
	set(&cfg.S3User, jc.S3User)
	set(&cfg.S3Password, jc.S3Password)
	set(&cfg.LogLevel, jc.LogLevel)
}
