package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidCoordinates  = errors.New("coordinates out of range")
	ErrLocationUnavailable = errors.New("location unavailable")
)

// UnavailableNotice asks the user to type the address instead.
const UnavailableNotice = "Unable to retrieve your location. Please enter it manually."

// MapLink renders a shareable map URL for the given position.
func MapLink(lat, lng float64) (string, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return "", ErrInvalidCoordinates
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lng, 'f', -1, 64)), nil
}

// Coordinates is a resolved position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ipLocation struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPLocator approximates a client's position from its public IP address.
type IPLocator struct {
	urlFormat string
	client    *http.Client
	logger    *zap.Logger

	mu    sync.RWMutex
	cache map[string]Coordinates
}

// NewIPLocator builds a locator; urlFormat holds one %s for the IP.
func NewIPLocator(urlFormat string, timeout time.Duration, logger *zap.Logger) *IPLocator {
	return &IPLocator{
		urlFormat: urlFormat,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
		cache:     make(map[string]Coordinates),
	}
}

func (l *IPLocator) Locate(ctx context.Context, ip string) (Coordinates, error) {
	if ip == "" || !isPublicIP(ip) {
		return Coordinates{}, ErrLocationUnavailable
	}

	l.mu.RLock()
	if c, ok := l.cache[ip]; ok {
		l.mu.RUnlock()
		return c, nil
	}
	l.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(l.urlFormat, ip), nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Warn("IP location lookup failed", zap.String("ip", ip), zap.Error(err))
		return Coordinates{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("IP location lookup returned non-OK status", zap.String("ip", ip), zap.Int("status", resp.StatusCode))
		return Coordinates{}, ErrLocationUnavailable
	}

	var loc ipLocation
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return Coordinates{}, fmt.Errorf("%w: decode: %v", ErrLocationUnavailable, err)
	}
	if loc.Status != "success" {
		l.logger.Warn("IP location lookup error", zap.String("ip", ip), zap.String("message", loc.Message))
		return Coordinates{}, ErrLocationUnavailable
	}

	c := Coordinates{Latitude: loc.Lat, Longitude: loc.Lon}
	l.mu.Lock()
	l.cache[ip] = c
	l.mu.Unlock()
	return c, nil
}

func isPublicIP(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return false
	}
	return !(parsed.IsPrivate() || parsed.IsLoopback() || parsed.IsUnspecified() ||
		parsed.IsLinkLocalUnicast() || parsed.IsMulticast())
}
