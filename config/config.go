package config

import "os"

var exit = os.Exit

// InitializeConfig sets up the process-wide clients. Redis and InfluxDB are
// optional and stay nil when their address is not configured.
func InitializeConfig() (*Env, error) {
	return initialize(true)
}

// InitializeLocal is InitializeConfig without the database, for processes
// backed by in-memory storage.
func InitializeLocal() (*Env, error) {
	return initialize(false)
}

func initialize(withDatabase bool) (*Env, error) {
	cfg, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	NewLoggerService(cfg)

	if withDatabase {
		if err := ConnectDatabase(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.RedisHost) > 0 {
		if err := NewCacheService(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.InfluxDBURL) > 0 {
		if err := NewInfluxDB(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Close releases the clients opened by InitializeConfig.
func Close() {
	if Redis != nil {
		Redis.Close()
	}

	if InfluxDB != nil {
		InfluxDB.Close()
	}

	CloseDatabase()
	CloseLogger()
}

// Fatalf logs at error level, closes the clients so queued Rollbar reports
// are flushed, and exits with status 1.
func Fatalf(format string, args ...interface{}) {
	Logger.Errorf(format, args...)
	Close()
	exit(1)
}
