// Command gostudio-loadtest measures request identification and session
// membership throughput against Redis. Without --redis-addr or REDIS_ADDR it
// runs against an in-process miniredis.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	flag "github.com/spf13/pflag"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	goStudio "github.com/MrEthical07/goStudio"
	"github.com/MrEthical07/goStudio/internal/stores"
	"github.com/MrEthical07/goStudio/metrics/export/otel"
	"github.com/MrEthical07/goStudio/password"
	"github.com/MrEthical07/goStudio/session"
)

func main() {
	var (
		users       = flag.Int("users", 10000, "number of accounts to seed")
		sessions    = flag.Int("sessions", 200, "number of sessions to seed")
		concurrency = flag.Int("concurrency", 128, "number of concurrent workers")
		ops         = flag.Int("ops", 100000, "operations per phase")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "gsload", "key prefix")
	)
	flag.Parse()

	if *users <= 0 || *sessions <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "users, sessions, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	if err := run(context.Background(), *redisAddr, *prefix, *users, *sessions, *concurrency, *ops); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, addr, prefix string, users, sessions, concurrency, ops int) error {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("start miniredis: %w", err)
		}
		defer mr.Close()
		addr = mr.Addr()
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		fmt.Printf("using redis at %s\n", addr)
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, PoolSize: concurrency})
	defer rdb.Close()

	userStore := stores.NewUsers(rdb, prefix)
	cfg := goStudio.DefaultConfig()
	cfg.JWT.Secret = []byte("loadtest-secret-loadtest-secret-0")

	engine, err := goStudio.New().
		WithConfig(cfg).
		WithStores(goStudio.Stores{
			Users:    userStore,
			Sessions: session.NewStore(rdb, prefix),
			Teachers: stores.NewTeachers(rdb, prefix),
		}).
		Build()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer engine.Close()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(ctx)
	exporter, err := otel.New(provider.Meter("gostudio-loadtest"), engine)
	if err != nil {
		return err
	}
	defer exporter.Close()

	fmt.Printf("seeding %d users and %d sessions...\n", users, sessions)
	startSeed := time.Now()
	state, err := seed(ctx, engine, userStore, users, sessions)
	if err != nil {
		return err
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	identify := runPhase(ops, concurrency, func(r *rand.Rand) error {
		_, err := engine.Identify(ctx, state.tokens[r.Intn(len(state.tokens))])
		return err
	})
	membership := runPhase(ops, concurrency, func(r *rand.Rand) error {
		sessionID := state.sessionIDs[r.Intn(len(state.sessionIDs))]
		userID := state.userIDs[r.Intn(len(state.userIDs))]
		err := engine.JoinSession(ctx, sessionID, userID)
		if errors.Is(err, goStudio.ErrAlreadyMember) {
			err = engine.LeaveSession(ctx, sessionID, userID)
		}
		if errors.Is(err, goStudio.ErrConflict) {
			// Lost a race with another worker on the same pair.
			return nil
		}
		return err
	})

	fmt.Println("---- results ----")
	printStats("identify", identify)
	printStats("join/leave", membership)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("collect metrics: %w", err)
	}
	printCounters(rm)
	return nil
}

type seeded struct {
	tokens     []string
	userIDs    []int64
	sessionIDs []int64
}

// seed writes users straight to the store with one shared hash; hashing per
// user would dominate the run.
func seed(ctx context.Context, engine *goStudio.Engine, users *stores.Users, nUsers, nSessions int) (*seeded, error) {
	hasher, err := password.NewArgon2(password.Config{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	if err != nil {
		return nil, err
	}
	hash, err := hasher.Hash("loadtest-password")
	if err != nil {
		return nil, err
	}

	out := &seeded{}
	now := time.Now().UTC()
	var admin *goStudio.Principal
	for i := 0; i < nUsers; i++ {
		rec := &goStudio.UserRecord{
			Identifier:   fmt.Sprintf("user%d@load.test", i),
			PasswordHash: hash,
			FirstName:    "Load",
			LastName:     "Test",
			Admin:        i == 0,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, rec); err != nil {
			return nil, fmt.Errorf("create user %d: %w", i, err)
		}
		tok, err := engine.IssueToken(ctx, rec.Identifier)
		if err != nil {
			return nil, err
		}
		out.tokens = append(out.tokens, tok)
		out.userIDs = append(out.userIDs, rec.ID)
		if i == 0 {
			admin = rec.Principal()
		}
	}

	if _, err := goStudio.Seed(ctx, engine, goStudio.SeedData{
		Teachers: []goStudio.Teacher{{FirstName: "Load", LastName: "Teacher"}},
	}); err != nil {
		return nil, err
	}
	teachers, err := engine.Teachers(ctx)
	if err != nil {
		return nil, err
	}

	for i := 0; i < nSessions; i++ {
		s, err := engine.CreateSession(ctx, admin, goStudio.SessionInput{
			Name:        fmt.Sprintf("Load session %d", i),
			Date:        now.Add(time.Duration(i) * time.Hour),
			TeacherID:   teachers[0].ID,
			Description: "generated",
		})
		if err != nil {
			return nil, fmt.Errorf("create session %d: %w", i, err)
		}
		out.sessionIDs = append(out.sessionIDs, s.ID)
	}
	return out, nil
}

func runPhase(ops, concurrency int, op func(r *rand.Rand) error) phaseStats {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		cursor   int64
		failures int64
	)
	latencies := make([]time.Duration, 0, ops)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			local := make([]time.Duration, 0, ops/concurrency+1)
			for {
				if int(atomic.AddInt64(&cursor, 1)) > ops {
					break
				}
				t0 := time.Now()
				if err := op(r); err != nil {
					atomic.AddInt64(&failures, 1)
				}
				local = append(local, time.Since(t0))
			}
			mu.Lock()
			latencies = append(latencies, local...)
			mu.Unlock()
		}(w)
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

// percentile expects sorted samples.
func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	switch {
	case p <= 0:
		return samples[0]
	case p >= 100:
		return samples[len(samples)-1]
	}
	return samples[(len(samples)-1)*p/100]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

// printCounters prints every non-zero engine counter collected through the
// OTel bridge.
func printCounters(rm metricdata.ResourceMetrics) {
	fmt.Println("---- engine counters ----")
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok || len(sum.DataPoints) == 0 || sum.DataPoints[0].Value == 0 {
				continue
			}
			fmt.Printf("%s %d\n", m.Name, sum.DataPoints[0].Value)
		}
	}
}
