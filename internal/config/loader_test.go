package config_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/okian/pxpstats/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5000")
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 2000)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"http://localhost:3000"})
				convey.So(cfg.WriteTimeout, convey.ShouldEqual, 30*time.Second)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PXP_ADDR", ":8080")
			_ = os.Setenv("PXP_DATABASE_PATH", "/var/lib/pxp/olympics.db")
			_ = os.Setenv("PXP_MAX_LIMIT", "500")
			_ = os.Setenv("PXP_DEFAULT_LIMIT", "100")
			_ = os.Setenv("PXP_RATE_LIMIT_WINDOW", "30s")
			_ = os.Setenv("PXP_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatabasePath, convey.ShouldEqual, "/var/lib/pxp/olympics.db")
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 500)
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 100)
				convey.So(cfg.RateLimitWindow, convey.ShouldEqual, 30*time.Second)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When the origin list carries spaces and empty entries", func() {
			_ = os.Setenv("PXP_CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example,")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then each origin is trimmed and blanks are dropped", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When the YAML file lists origins", func() {
			tmpFile := createTempConfigFile(`
cors_allowed_origins:
  - "https://a.example"
  - "https://b.example"
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PXP_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the list is kept as written", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
database_path: "stats.db"
log_format: "json"
max_limit: 1000
default_limit: 250
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PXP_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DatabasePath, convey.ShouldEqual, "stats.db")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 1000)
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 250)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
database_path: "stats.db"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PXP_CONFIG", tmpFile)
			_ = os.Setenv("PXP_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")          // Overridden by env
				convey.So(cfg.DatabasePath, convey.ShouldEqual, "stats.db") // From file
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 2000)           // From defaults
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PXP_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PXP_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("PXP_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PXP_MAX_LIMIT", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the default limit is above the maximum", func() {
			_ = os.Setenv("PXP_MAX_LIMIT", "10")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "default_limit")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// createTempConfigFile creates a temporary YAML config file for testing.
func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "pxp-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}

// clearConfigEnvVars clears all PXP_ environment variables.
func clearConfigEnvVars() {
	for _, v := range []string{
		"PXP_CONFIG",
		"PXP_ADDR",
		"PXP_DATABASE_PATH",
		"PXP_MAX_LIMIT",
		"PXP_DEFAULT_LIMIT",
		"PXP_RATE_LIMIT_WINDOW",
		"PXP_CORS_ALLOWED_ORIGINS",
		"PXP_LOG_LEVEL",
		"PXP_LOG_FORMAT",
	} {
		_ = os.Unsetenv(v)
	}
}
