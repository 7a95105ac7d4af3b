package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args (without the program
// name). Unknown flags are reported as errors instead of exiting.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-live-dir directory of live encrypted files
//	-destroyed-dir directory receiving files of destroyed vaults
//	-session-db client session database path
//	-c/-config config file path (.json, .toml, .yaml)
//	-key-hash-key vault key hash key
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-server vault API base URL used by clients
//	-log-level zerolog level
//	-log-file client log file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("vault", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, liveDir, destroyedDir, sessionDSN string
	var configPath string
	var keyHashKey, tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout time.Duration
	var serverURL string
	var logLevel, logFile string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&liveDir, "live-dir", "", "Directory of live encrypted files")
	fs.StringVar(&destroyedDir, "destroyed-dir", "", "Directory receiving files of destroyed vaults")
	fs.StringVar(&sessionDSN, "session-db", "", "Client session database path")
	fs.StringVar(&configPath, "c", "", "Config file path")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.StringVar(&keyHashKey, "key-hash-key", "", "Vault key hash key")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&serverURL, "server", "", "Vault API base URL")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&logFile, "log-file", "", "Client log file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			KeyHashKey:    keyHashKey,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB:      DB{DSN: databaseDSN},
			Files:   Files{LiveDir: liveDir, DestroyedDir: destroyedDir},
			Session: Session{DSN: sessionDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			ServerURL:      serverURL,
			RequestTimeout: requestTimeout,
		},
		Log:            Log{Level: logLevel, File: logFile},
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host listens on all interfaces; otherwise the host must be
// "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
