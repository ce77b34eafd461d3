// Command gostudio runs the yoga studio booking API and its operator tooling.
//
// Configuration comes from the environment (see internal/config). Typical use:
//
//	JWT_SECRET=$(openssl rand -hex 32) gostudio migrate
//	JWT_SECRET=... gostudio seed
//	JWT_SECRET=... gostudio serve
package main

import (
	"fmt"
	"os"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
