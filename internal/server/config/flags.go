package config

import (
	"flag"
	"os"
	"time"

	"github.com/twit2/t2-auth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3200")
//	-d string   PostgreSQL DSN
//	-q string   internal RPC bind endpoint (e.g., "tcp://*:5600")
//	-e string   user-profile peer endpoint
//	-g string   active hash algorithm identifier ("bcrypt")
//	-r int      hash cost/rounds parameter
//	-t int      token validity, minutes
//	-s string   hex-encoded token signing key
//
// Args are first filtered through flagx.FilterArgs so flags belonging to
// other components are left alone.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-q", "-e", "-g", "-r", "-t", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RPCBindEndpoint, "q", config.RPCBindEndpoint, "internal RPC bind endpoint")
	fs.StringVar(&config.ProfilePeerEndpoint, "e", config.ProfilePeerEndpoint, "user-profile peer endpoint")
	fs.StringVar(&config.HashAlgo, "g", config.HashAlgo, "active hash algorithm")
	fs.IntVar(&config.HashCost, "r", config.HashCost, "hash cost/rounds")
	fs.StringVar(&config.SigningKeyHex, "s", config.SigningKeyHex, "hex-encoded token signing key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// the minutes conversion applies only when -t was actually passed;
	// a JSON- or env-configured sub-minute validity must not be rounded
	// through the flag default
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
}
