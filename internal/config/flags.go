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

// ParseFlags parses the server command-line flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc health server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-debug enable debug logging
//	-token-sign-key token signing key
//	-token-algorithm token signing algorithm (HS256, HS384, HS512)
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-max-login-attempts failed logins before an account is locked
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-base-url public base URL used in emailed links
//	-mail-host / -mail-port / -mail-user / -mail-password / -mail-from SMTP settings
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var debug bool
	var tokenSignKey string
	var tokenAlgorithm string
	var tokenIssuer string
	var tokenDuration time.Duration
	var maxLoginAttempts int
	var requestTimeout time.Duration
	var baseURL string
	var mailHost, mailUser, mailPassword, mailFrom string
	var mailPort int

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.BoolVar(&debug, "debug", false, "Enable debug logging")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenAlgorithm, "token-algorithm", "", "Token signing algorithm")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.IntVar(&maxLoginAttempts, "max-login-attempts", 0, "Failed logins before lock")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&baseURL, "base-url", "", "Public base URL")
	fs.StringVar(&mailHost, "mail-host", "", "SMTP host")
	fs.IntVar(&mailPort, "mail-port", 0, "SMTP port")
	fs.StringVar(&mailUser, "mail-user", "", "SMTP username")
	fs.StringVar(&mailPassword, "mail-password", "", "SMTP password")
	fs.StringVar(&mailFrom, "mail-from", "", "Sender address")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Debug:            debug,
			TokenSignKey:     tokenSignKey,
			TokenAlgorithm:   tokenAlgorithm,
			TokenIssuer:      tokenIssuer,
			TokenDuration:    tokenDuration,
			MaxLoginAttempts: maxLoginAttempts,
			ServerBaseURL:    baseURL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			Mail: Mail{
				Host:     mailHost,
				Port:     mailPort,
				Username: mailUser,
				Password: mailPassword,
				From:     mailFrom,
			},
		},
		JSONFilePath: jsonConfigPath,
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
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
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

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
