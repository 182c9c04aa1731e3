package cache

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis answers the RESP2 subset RedisCache uses: PING, GET, SET and DEL.
// HELLO is refused so clients fall back to RESP2; anything else gets +OK.
type fakeRedis struct {
	ln   net.Listener
	mu   sync.Mutex
	data map[string]string
	ttls map[string]bool
}

func startFakeRedis(t *testing.T) *fakeRedis {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	f := &fakeRedis{ln: ln, data: map[string]string{}, ttls: map[string]bool{}}
	go f.serve()
	t.Cleanup(func() { ln.Close() })
	return f
}

func (f *fakeRedis) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeRedis) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		if _, err := io.WriteString(conn, f.exec(args)); err != nil {
			return
		}
	}
}

func (f *fakeRedis) exec(args []string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch strings.ToUpper(args[0]) {
	case "HELLO":
		return "-ERR unknown command 'HELLO'\r\n"
	case "PING":
		return "+PONG\r\n"
	case "GET":
		v, ok := f.data[args[1]]
		if !ok {
			return "$-1\r\n"
		}
		return fmt.Sprintf("$%d\r\n%s\r\n", len(v), v)
	case "SET":
		f.data[args[1]] = args[2]
		f.ttls[args[1]] = len(args) > 3
		return "+OK\r\n"
	case "DEL":
		n := 0
		for _, k := range args[1:] {
			if _, ok := f.data[k]; ok {
				delete(f.data, k)
				n++
			}
		}
		return fmt.Sprintf(":%d\r\n", n)
	}
	return "+OK\r\n"
}

func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "*") {
		return nil, fmt.Errorf("unexpected %q", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
	if err != nil || n < 1 {
		return nil, fmt.Errorf("bad array header %q", line)
	}
	args := make([]string, n)
	for i := range args {
		head, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(head, "$")))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args[i] = string(buf[:size])
	}
	return args, nil
}

func newTestRedisCache(addr string) *RedisCache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{
		Addr:       addr,
		Protocol:   2,
		MaxRetries: -1,
	}))
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	f := startFakeRedis(t)
	c := newTestRedisCache(f.ln.Addr().String())
	defer c.Close()

	data, hit, err := c.Get(ctx, "artifact:missing")
	if err != nil || hit || data != nil {
		t.Errorf("Get(missing) = %q, %v, %v, want a miss", data, hit, err)
	}

	if err := c.Set(ctx, "artifact:a", []byte("%PDF-1.4"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err = c.Get(ctx, "artifact:a")
	if err != nil || !hit || string(data) != "%PDF-1.4" {
		t.Errorf("Get() = %q, %v, %v, want a hit", data, hit, err)
	}
	f.mu.Lock()
	withTTL := f.ttls["artifact:a"]
	f.mu.Unlock()
	if !withTTL {
		t.Error("Set() sent no expiry")
	}

	if err := c.Delete(ctx, "artifact:a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:a"); hit {
		t.Error("Get() hit after Delete")
	}
}

func TestNewRedisCachePing(t *testing.T) {
	f := startFakeRedis(t)
	c, err := NewRedisCache(context.Background(), "redis://"+f.ln.Addr().String()+"/0")
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	c.Close()
}

func TestRedisCacheUnreachable(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	c := newTestRedisCache(addr)
	defer c.Close()
	ctx := context.Background()

	if _, _, err := c.Get(ctx, "k"); !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); !errors.Is(err, ErrNetwork) {
		t.Errorf("Set() error = %v, want ErrNetwork", err)
	}
	if _, err := NewRedisCache(ctx, "redis://"+addr); !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCache() error = %v, want ErrNetwork", err)
	}
}

func TestNetworkErrorIsRetryable(t *testing.T) {
	if networkError(nil) != nil {
		t.Error("networkError(nil) != nil")
	}
	err := networkError(errors.New("connection reset"))
	if !IsRetryable(err) {
		t.Error("IsRetryable(networkError) = false")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("networkError does not wrap ErrNetwork")
	}
}
