// ABOUTME: Preference store for location, units, and notification state.
// ABOUTME: KVStore implements it over any byte key-value backend.
package prefs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
)

// Defaults used when a key has never been written.
const (
	DefaultLocation      = "94043,USA"
	DefaultUnits         = UnitsMetric
	DefaultNotifications = true
)

// Preference keys.
const (
	KeyLocation         = "location"
	KeyUnits            = "units"
	KeyCoordLat         = "coord_lat"
	KeyCoordLong        = "coord_long"
	KeyNotifications    = "enable_notifications"
	KeyLastNotification = "last_notification"
)

// Units is the temperature unit system.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// ParseUnits accepts metric/imperial and the c/f shorthands.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metric", "celsius", "c":
		return UnitsMetric, nil
	case "imperial", "fahrenheit", "f":
		return UnitsImperial, nil
	}
	return "", fmt.Errorf("unknown units %q (want metric or imperial)", s)
}

// Store is the preference surface the rest of the app reads.
type Store interface {
	PreferredLocation() (string, error)
	SetPreferredLocation(location string) error
	IsMetric() (bool, error)
	SetUnits(u Units) error
	LocationCoordinates() (lat, lon float64, err error)
	SetLocationDetails(lat, lon float64) error
	ResetLocationCoordinates() error
	IsLocationLatLonAvailable() (bool, error)
	AreNotificationsEnabled() (bool, error)
	SetNotificationsEnabled(enabled bool) error
	LastNotificationTime() (int64, error)
	SaveLastNotificationTime(millis int64) error
	ElapsedSinceLastNotification(now time.Time) (time.Duration, error)
	Close() error
}

// KV is a byte key-value backend. Get returns badger.ErrKeyNotFound for missing keys.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Close() error
}

// KVStore stores preferences in a KV backend.
type KVStore struct {
	kv KV
	mu sync.Mutex
}

var _ Store = (*KVStore)(nil)

// NewKVStore wraps a backend.
func NewKVStore(kv KV) *KVStore {
	return &KVStore{kv: kv}
}

func (s *KVStore) get(key string) ([]byte, bool, error) {
	val, err := s.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return val, true, nil
}

func (s *KVStore) set(key string, val []byte) error {
	if err := s.kv.Set([]byte(key), val); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) getInt64(key string) (int64, bool, error) {
	val, ok, err := s.get(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	if len(val) != 8 {
		return 0, false, fmt.Errorf("get %s: expected 8 bytes, got %d", key, len(val))
	}
	return int64(binary.BigEndian.Uint64(val)), true, nil
}

func (s *KVStore) setInt64(key string, v int64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))
	return s.set(key, buf)
}

// PreferredLocation returns the saved location query.
func (s *KVStore) PreferredLocation() (string, error) {
	val, ok, err := s.get(KeyLocation)
	if err != nil || !ok {
		return DefaultLocation, err
	}
	return string(val), nil
}

// SetPreferredLocation saves the location query.
func (s *KVStore) SetPreferredLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return errors.New("location cannot be empty")
	}
	return s.set(KeyLocation, []byte(location))
}

// IsMetric reports whether temperatures should be shown in Celsius.
func (s *KVStore) IsMetric() (bool, error) {
	val, ok, err := s.get(KeyUnits)
	if err != nil || !ok {
		return DefaultUnits == UnitsMetric, err
	}
	return Units(val) == UnitsMetric, nil
}

// SetUnits saves the unit system.
func (s *KVStore) SetUnits(u Units) error {
	if u != UnitsMetric && u != UnitsImperial {
		return fmt.Errorf("unknown units %q", u)
	}
	return s.set(KeyUnits, []byte(u))
}

// LocationCoordinates returns the saved coordinates, or 0,0 when unset.
func (s *KVStore) LocationCoordinates() (float64, float64, error) {
	lat, _, err := s.getInt64(KeyCoordLat)
	if err != nil {
		return 0, 0, err
	}
	lon, _, err := s.getInt64(KeyCoordLong)
	if err != nil {
		return 0, 0, err
	}
	return math.Float64frombits(uint64(lat)), math.Float64frombits(uint64(lon)), nil
}

// SetLocationDetails saves coordinates as raw float bits.
func (s *KVStore) SetLocationDetails(lat, lon float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setInt64(KeyCoordLat, int64(math.Float64bits(lat))); err != nil {
		return err
	}
	return s.setInt64(KeyCoordLong, int64(math.Float64bits(lon)))
}

// ResetLocationCoordinates removes saved coordinates.
func (s *KVStore) ResetLocationCoordinates() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{KeyCoordLat, KeyCoordLong} {
		if err := s.kv.Delete([]byte(key)); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

// IsLocationLatLonAvailable reports whether both coordinates are saved.
func (s *KVStore) IsLocationLatLonAvailable() (bool, error) {
	_, hasLat, err := s.get(KeyCoordLat)
	if err != nil {
		return false, err
	}
	_, hasLon, err := s.get(KeyCoordLong)
	if err != nil {
		return false, err
	}
	return hasLat && hasLon, nil
}

// AreNotificationsEnabled reports whether weather notifications are on.
func (s *KVStore) AreNotificationsEnabled() (bool, error) {
	val, ok, err := s.get(KeyNotifications)
	if err != nil || !ok {
		return DefaultNotifications, err
	}
	enabled, err := strconv.ParseBool(string(val))
	if err != nil {
		return DefaultNotifications, fmt.Errorf("get %s: %w", KeyNotifications, err)
	}
	return enabled, nil
}

// SetNotificationsEnabled turns weather notifications on or off.
func (s *KVStore) SetNotificationsEnabled(enabled bool) error {
	return s.set(KeyNotifications, []byte(strconv.FormatBool(enabled)))
}

// LastNotificationTime returns epoch millis of the last notification, or 0.
func (s *KVStore) LastNotificationTime() (int64, error) {
	v, _, err := s.getInt64(KeyLastNotification)
	return v, err
}

// SaveLastNotificationTime records when a notification was shown.
func (s *KVStore) SaveLastNotificationTime(millis int64) error {
	return s.setInt64(KeyLastNotification, millis)
}

// ElapsedSinceLastNotification returns now minus the last notification time.
func (s *KVStore) ElapsedSinceLastNotification(now time.Time) (time.Duration, error) {
	last, err := s.LastNotificationTime()
	if err != nil {
		return 0, err
	}
	return time.Duration(now.UnixMilli()-last) * time.Millisecond, nil
}

// Close closes the backend.
func (s *KVStore) Close() error {
	return s.kv.Close()
}
