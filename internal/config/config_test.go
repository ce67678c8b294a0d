package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Shadowrithik/Modify-data2/internal/config"
)

// clearEnv unsets every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"ENV", "STORAGE_DRIVER", "MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION",
		"STORAGE_PATH", "STORAGE_CONNECT_TIMEOUT", "HOST", "PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadFromEnv(t *testing.T) {
	Convey("Given only environment variables", t, func() {
		clearEnv(t)
		t.Chdir(t.TempDir()) // no stray .env

		Convey("A mongo URI alone is enough and defaults fill the rest", func() {
			t.Setenv("MONGO_URI", "mongodb://localhost:27017/menu")

			cfg, err := config.Load("")
			So(err, ShouldBeNil)
			So(cfg.Env, ShouldEqual, "dev")
			So(cfg.Storage.Driver, ShouldEqual, config.DriverMongo)
			So(cfg.Storage.Collection, ShouldEqual, "menuitems")
			So(cfg.Storage.ConnectTimeout, ShouldEqual, 10*time.Second)
			So(cfg.Port, ShouldEqual, "5000")
			So(cfg.Addr(), ShouldEqual, ":5000")
		})

		Convey("PORT overrides the default port", func() {
			t.Setenv("STORAGE_DRIVER", "memory")
			t.Setenv("PORT", "8082")

			cfg, err := config.Load("")
			So(err, ShouldBeNil)
			So(cfg.Addr(), ShouldEqual, ":8082")
		})

		Convey("The mongo driver without a URI is rejected", func() {
			_, err := config.Load("")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "MONGO_URI")
		})

		Convey("An unknown driver is rejected", func() {
			t.Setenv("STORAGE_DRIVER", "redis")

			_, err := config.Load("")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadFromFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		clearEnv(t)
		dir := t.TempDir()
		t.Chdir(dir)

		path := filepath.Join(dir, "local.yaml")
		err := os.WriteFile(path, []byte(`
env: prod
storage:
  driver: sqlite
  path: data/menu.db
http_server:
  host: 127.0.0.1
  port: "9000"
`), 0o600)
		So(err, ShouldBeNil)

		Convey("Values come from the file", func() {
			cfg, err := config.Load(path)
			So(err, ShouldBeNil)
			So(cfg.Env, ShouldEqual, "prod")
			So(cfg.Storage.Driver, ShouldEqual, config.DriverSQLite)
			So(cfg.Storage.Path, ShouldEqual, "data/menu.db")
			So(cfg.Addr(), ShouldEqual, "127.0.0.1:9000")
		})

		Convey("Environment variables win over the file", func() {
			t.Setenv("PORT", "9100")

			cfg, err := config.Load(path)
			So(err, ShouldBeNil)
			So(cfg.Port, ShouldEqual, "9100")
		})

		Convey("A missing file is an error", func() {
			_, err := config.Load(filepath.Join(dir, "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a .env file in the working directory", t, func() {
		clearEnv(t)
		dir := t.TempDir()
		t.Chdir(dir)

		err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STORAGE_DRIVER=memory\nPORT=7000\n"), 0o600)
		So(err, ShouldBeNil)

		Convey("Its values are picked up", func() {
			cfg, err := config.Load("")
			So(err, ShouldBeNil)
			So(cfg.Storage.Driver, ShouldEqual, config.DriverMemory)
			So(cfg.Port, ShouldEqual, "7000")
		})
	})
}
