package rate_limiting

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	motmedelErrors "github.com/Motmedel/static_server_go/pkg/errors"
	muxErrors "github.com/Motmedel/static_server_go/pkg/http/mux/errors"
	"golang.org/x/time/rate"
)

const DefaultIdleExpiration = 5 * time.Minute

func DefaultGetRateLimitingKey(request *http.Request) (string, error) {
	if request == nil {
		return "", motmedelErrors.NewWithTrace(muxErrors.ErrNilHttpRequest)
	}

	remoteAddr := request.RemoteAddr
	ipAddress, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return "", motmedelErrors.New(fmt.Errorf("net split host port: %w", err), remoteAddr)
	}

	return ipAddress, nil
}

type timerLimiter struct {
	limiter *rate.Limiter
	timer   *time.Timer
}

type RateLimitingConfiguration struct {
	RequestsPerSecond float64
	Burst             int
	IdleExpiration    time.Duration
	GetKey            func(*http.Request) (string, error)

	mutex  sync.Mutex
	lookup map[string]*timerLimiter
}

func (configuration *RateLimitingConfiguration) limiterFor(key string) *rate.Limiter {
	configuration.mutex.Lock()
	defer configuration.mutex.Unlock()

	if configuration.lookup == nil {
		configuration.lookup = make(map[string]*timerLimiter)
	}

	idleExpiration := configuration.IdleExpiration
	if idleExpiration <= 0 {
		idleExpiration = DefaultIdleExpiration
	}

	entry, ok := configuration.lookup[key]
	if !ok {
		burst := configuration.Burst
		if burst <= 0 {
			burst = max(1, int(math.Ceil(configuration.RequestsPerSecond)))
		}
		entry = &timerLimiter{limiter: rate.NewLimiter(rate.Limit(configuration.RequestsPerSecond), burst)}
		configuration.lookup[key] = entry
	}

	if entry.timer != nil {
		entry.timer.Stop()
	}
	entry.timer = time.AfterFunc(idleExpiration, func() {
		configuration.mutex.Lock()
		defer configuration.mutex.Unlock()
		if current, ok := configuration.lookup[key]; ok && current == entry {
			delete(configuration.lookup, key)
		}
	})

	return entry.limiter
}

// Claim reports whether the request may proceed; when it may not, the
// returned duration is how long the client should wait.
func (configuration *RateLimitingConfiguration) Claim(request *http.Request) (bool, time.Duration, error) {
	if configuration == nil || configuration.RequestsPerSecond <= 0 {
		return true, 0, nil
	}

	getKeyFunc := configuration.GetKey
	if getKeyFunc == nil {
		getKeyFunc = DefaultGetRateLimitingKey
	}

	key, err := getKeyFunc(request)
	if err != nil {
		return false, 0, fmt.Errorf("get key func: %w", err)
	}

	limiter := configuration.limiterFor(key)
	reservation := limiter.Reserve()
	if !reservation.OK() {
		return false, time.Second, nil
	}

	if delay := reservation.Delay(); delay > 0 {
		reservation.Cancel()
		return false, delay, nil
	}

	return true, 0, nil
}

func (configuration *RateLimitingConfiguration) NumTracked() int {
	configuration.mutex.Lock()
	defer configuration.mutex.Unlock()
	return len(configuration.lookup)
}
