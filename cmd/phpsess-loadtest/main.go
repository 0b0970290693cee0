package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/phpsess"
	"github.com/MrEthical07/phpsess/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		sessions    = flag.Int("sessions", 100000, "number of sessions to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (decode + authenticate)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", session.DefaultPrefix, "session key prefix")
		missRatio   = flag.Float64("miss-ratio", 0.1, "fraction of authenticate calls using unknown session ids")
	)
	flag.Parse()

	if *sessions <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "sessions, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	cfg := phpsess.DefaultConfig()
	cfg.Redis.Prefix = *prefix
	strategy, err := phpsess.New().
		WithConfig(cfg).
		WithRedis(client).
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "strategy build failed: %v\n", err)
		os.Exit(1)
	}
	defer strategy.Close()

	ids := make([]string, *sessions)
	fmt.Printf("seeding %d sessions...\n", *sessions)
	startSeed := time.Now()
	for i := 0; i < *sessions; i++ {
		ids[i] = fmt.Sprintf("sid-%d", i)
		if err := client.Set(ctx, *prefix+ids[i], buildRecord(i), 24*time.Hour).Err(); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	store := session.NewStore(client, *prefix)
	readStats := runReadPhase(ctx, store, ids, *ops, *concurrency)
	authStats := runAuthenticatePhase(strategy, ids, *ops, *concurrency, *missRatio)

	fmt.Println("---- results ----")
	printStats("store-get", readStats)
	printStats("authenticate", authStats)

	snap := strategy.MetricsSnapshot()
	fmt.Printf("outcomes: success=%d fail=%d error=%d\n",
		snap.Counters[phpsess.MetricAuthSuccess],
		snap.Counters[phpsess.MetricAuthFailure],
		snap.Counters[phpsess.MetricAuthError],
	)
}

func runReadPhase(ctx context.Context, store *session.Store, ids []string, ops, concurrency int) phaseStats {
	return runPhase(ops, concurrency, 7919, func(r *rand.Rand) error {
		_, err := store.Get(ctx, ids[r.Intn(len(ids))])
		return err
	})
}

func runAuthenticatePhase(strategy *phpsess.Strategy, ids []string, ops, concurrency int, missRatio float64) phaseStats {
	return runPhase(ops, concurrency, 6151, func(r *rand.Rand) error {
		id := ids[r.Intn(len(ids))]
		wantSuccess := true
		if r.Float64() < missRatio {
			id = "missing-" + id
			wantSuccess = false
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: strategy.SessionName(), Value: id})

		res, err := strategy.AuthenticateResult(req)
		if err != nil {
			return err
		}
		if (res.Outcome == phpsess.OutcomeSuccess) != wantSuccess {
			return fmt.Errorf("unexpected outcome %s", res.Outcome)
		}
		return nil
	})
}

func runPhase(ops, concurrency int, seed int64, op func(*rand.Rand) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*seed))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				err := op(r)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
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

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
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

// buildRecord renders a phpredis-style session: timestamp, '|', then a
// serialized stdClass with a few typed properties.
func buildRecord(i int) string {
	name := fmt.Sprintf("user-%d", i)
	return fmt.Sprintf(`%d|O:8:"stdClass":3:{s:2:"id";i:%d;s:4:"name";s:%d:"%s";s:5:"admin";b:%d;}`,
		time.Now().Unix(), i, len(name), name, i%2)
}
