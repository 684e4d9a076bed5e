// Copyright © 2021 Io FinNet Group, Inc.
// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

const (
	MinSafePrimeBits = 3
	MaxSafePrimeBits = 32

	// maxDeltaSearch is the number of 2-increment steps tried from one random start.
	maxDeltaSearch = 1 << 10
)

type (
	// GermainSafePrime is a pair of primes with p = 2q + 1.
	GermainSafePrime struct {
		q,
		p uint64
	}
)

func (sgp *GermainSafePrime) Prime() uint64 {
	return sgp.q
}

func (sgp *GermainSafePrime) SafePrime() uint64 {
	return sgp.p
}

func (sgp *GermainSafePrime) Validate() bool {
	return sgp != nil &&
		sgp.p == PrimeToSafePrime(sgp.q) &&
		IsPrime(sgp.q) &&
		IsPrime(sgp.p)
}

func (sgp *GermainSafePrime) String() string {
	return fmt.Sprintf("%d = 2*%d + 1", sgp.p, sgp.q)
}

// ----- //

func PrimeToSafePrime(q uint64) uint64 {
	return 2*q + 1
}

// GetRandomSafePrimesConcurrent searches for numPrimes distinct safe primes p of exactly
// bitLen bits, running `concurrency` workers and keeping the first results they report.
// If the search does not finish within `timeout`, or a worker fails to read entropy,
// an error is returned.
//
// The safePrimeFilter parameter can be nil. If provided, it is called to check each
// new result against every result already accepted; duplicates are always dropped.
//
// Small bit lengths have few safe primes (3 bits: only 7), so asking for more distinct
// primes than exist ends in the timeout.
func GetRandomSafePrimesConcurrent(
	bitLen, numPrimes int, timeout time.Duration, concurrency int, safePrimeFilter func(p1, p2 *GermainSafePrime) bool) ([]*GermainSafePrime, error) {

	if bitLen < MinSafePrimeBits || bitLen > MaxSafePrimeBits {
		return nil, fmt.Errorf("safe prime size must be between %d and %d bits", MinSafePrimeBits, MaxSafePrimeBits)
	}
	if numPrimes < 1 {
		return nil, errors.New("numPrimes should be > 0")
	}
	if concurrency < 1 {
		concurrency = 1
	}

	errCh := make(chan error, concurrency)
	primeCh := make(chan *GermainSafePrime, concurrency)
	primes := make([]*GermainSafePrime, 0, numPrimes)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	wg := &sync.WaitGroup{}
	defer func() {
		cancel()
		wg.Wait()
	}()

	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		runGenPrimeRoutine(ctx, primeCh, errCh, wg, rand.Reader, bitLen)
	}

outer:
	for {
		select {
		case result := <-primeCh:
			for _, prime := range primes {
				if prime.p == result.p {
					continue outer
				}
				if safePrimeFilter != nil && !safePrimeFilter(prime, result) {
					continue outer
				}
			}
			primes = append(primes, result)
			if len(primes) == numPrimes {
				Logger.Debugf("found %d safe prime(s) of %d bits", numPrimes, bitLen)
				return primes, nil
			}
		case err := <-errCh:
			return nil, err
		case <-ctx.Done():
			return nil, fmt.Errorf("generator timed out after %v", timeout)
		}
	}
}

// Starts a goroutine searching for safe primes of `pBitLen` bits until ctx is done.
//
//  1. Draw a random odd q of pBitLen-1 bits with the top bit set.
//  2. Walk q, q+2, q+4, ... for at most maxDeltaSearch steps while q keeps its length.
//  3. Skip q = 1 (mod 3): then p = 2q+1 = 3(2k+1) is a multiple of 3.
//  4. Trial-divide q, then p. Report the pair when both are prime.
func runGenPrimeRoutine(
	ctx context.Context,
	primeCh chan<- *GermainSafePrime,
	errCh chan<- error,
	waitGroup *sync.WaitGroup,
	rand io.Reader,
	pBitLen int,
) {
	qBitLen := uint(pBitLen - 1)
	top := uint64(1) << (qBitLen - 1)
	mask := uint64(1)<<qBitLen - 1
	var buf [8]byte

	go func() {
		defer waitGroup.Done()

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if _, err := io.ReadFull(rand, buf[:]); err != nil {
				select {
				case errCh <- err:
				default:
				}
				return
			}
			q := binary.BigEndian.Uint64(buf[:])&mask | top | 1

			for delta := uint64(0); delta < maxDeltaSearch; delta++ {
				if q > mask {
					break
				}
				if q%3 != 1 && IsPrime(q) {
					if p := PrimeToSafePrime(q); IsPrime(p) {
						select {
						case primeCh <- &GermainSafePrime{q: q, p: p}:
						case <-ctx.Done():
							return
						}
						break
					}
				}
				q += 2
			}
		}
	}()
}
