package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/fitmint/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP bind address for health, metrics and read views
//	-m string   storage driver: memory, leveldb or postgres
//	-d string   PostgreSQL DSN
//	-p string   LevelDB directory
//	-s string   JWT HMAC secret key
//	-o string   owner account
//	-l string   log level
//	-f string   log file (stdout when empty)
//	-paused     start with claims and joins paused
//
// Arguments that belong to other components are filtered out first.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-w", "-m", "-d", "-p", "-s", "-o", "-l", "-f"}, "-paused")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.StorageDriver, "m", config.StorageDriver, "storage driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LevelDBPath, "p", config.LevelDBPath, "leveldb path")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.OwnerAccount, "o", config.OwnerAccount, "owner account")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "f", config.LogFile, "log file")
	fs.BoolVar(&config.StartPaused, "paused", config.StartPaused, "start paused")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
