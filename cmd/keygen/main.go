package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/chainpass/ticketing/internal/ticket"
)

var format = flag.String("format", "env", "Output format: env or json")

// keygen prints a fresh ticket signing key pair. The seed goes into
// CHAINPASS_SIGNING_PRIVATE_KEY on server processes only; the public key can be
// handed to anything that verifies tickets.
func main() {
	flag.Parse()

	seed, public, err := ticket.GenerateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate key: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "json":
		out, _ := json.MarshalIndent(map[string]string{
			"private_key": seed,
			"public_key":  public,
		}, "", "  ")
		fmt.Println(string(out))
	case "env":
		fmt.Printf("CHAINPASS_SIGNING_PRIVATE_KEY=%s\n", seed)
		fmt.Printf("CHAINPASS_SIGNING_PUBLIC_KEYS=%s\n", public)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q\n", *format)
		os.Exit(2)
	}
}
