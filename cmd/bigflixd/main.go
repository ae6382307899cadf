package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (default: discovered)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	initConfig := flag.Bool("init", false, "Write an example config and exit")
	tokenFor := flag.String("token", "", "Print a signed token for this user ID and exit")
	perms := flag.String("perms", "", "Comma separated permissions for -token (admin, auto_approve, manage_requests)")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "Lifetime of a -token token; 0 for no expiry")
	flag.Parse()

	if *showVersion {
		fmt.Printf("bigflixd %s\n", version)
		os.Exit(0)
	}

	if *initConfig {
		if err := writeExampleConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	path, err := resolveConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *tokenFor != "" {
		err = printToken(path, *tokenFor, *perms, *ttl)
	} else {
		err = runServer(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
