// Command hash-generator prints bcrypt hashes for seeding users directly
// into a store.
//
// Usage:
//
//	hash-generator [-cost 12] password [password...]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/phrazzld/employee-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", auth.MinBcryptCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password [password...]")
		os.Exit(2)
	}

	hasher, err := auth.NewBcryptHasher(*cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid cost: %v\n", err)
		os.Exit(2)
	}

	failed := false
	for _, password := range flag.Args() {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error hashing password %q: %v\n", password, err)
			failed = true
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", password, hash)
	}
	if failed {
		os.Exit(1)
	}
}
