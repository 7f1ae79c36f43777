/*
Package cfrac computes and manipulates continued-fraction representations of rational numbers.

A rational p/q is reduced to lowest terms, expanded with the Euclidean algorithm
into partial quotients [a0; a1, a2, ...], and can be rebuilt losslessly from
those coefficients. Convergents and bounded-denominator approximations are
derived from the same expansion.

# Architecture

The arithmetic lives in pkg/domain and is pure. The Engine in this package wraps
it with an optional expansion cache (pkg/adapters/memory, pkg/adapters/redis),
structured logging and observability hooks. Driving adapters expose the Engine
over HTTP (pkg/adapters/http), the Model Context Protocol (pkg/adapters/mcp) and
the cfrac command line.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/cfrac"
		"github.com/aretw0/cfrac/pkg/adapters/memory"
	)

	func main() {
		eng := cfrac.New(cfrac.WithCache(memory.NewCache()))
		ctx := context.Background()

		cf, err := eng.Expand(ctx, 355, 113)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(cf) // [3; 7, 16]

		conv, err := eng.Convergents(ctx, 355, 113)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(conv) // [3/1 22/7 355/113]
	}

# Arithmetic

All values are int64. Expansion follows Go's truncating division, so negative
numerators produce coefficients whose signs follow the dividend. Reconstruction
and convergents wrap on overflow.
*/
package cfrac
