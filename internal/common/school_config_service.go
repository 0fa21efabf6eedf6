package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/db/repositories"
)

const (
	ConfigKeyTimezone        = "timezone"
	ConfigKeyCurrency        = "currency"
	ConfigKeyStatementFooter = "statement_footer"
	ConfigKeyDueSoonBanner   = "due_soon_banner"
)

var AllowedSchoolConfigKeys = []string{
	ConfigKeyTimezone,
	ConfigKeyCurrency,
	ConfigKeyStatementFooter,
	ConfigKeyDueSoonBanner,
}

func IsValidSchoolConfigKey(k string) bool {
	for _, allowed := range AllowedSchoolConfigKeys {
		if allowed == k {
			return true
		}
	}
	return false
}

// SchoolConfigService serves per-school settings with a cache in front.
// The timezone key drives every calendar-date decision in the due
// calculator, so reads are hot and cached.
type SchoolConfigService struct {
	repo  *repositories.SchoolRepository
	cache CacheInterface
}

func NewSchoolConfigService(r *repositories.SchoolRepository, c CacheInterface) *SchoolConfigService {
	return &SchoolConfigService{repo: r, cache: c}
}

func configCacheKey(schoolID string) string {
	return string(constants.CachePrefixSchoolConfig) + schoolID
}

func (s *SchoolConfigService) ListPossibleKeys() []string { return AllowedSchoolConfigKeys }

// SetConfig upserts one key and returns the updated map.
func (s *SchoolConfigService) SetConfig(
	ctx context.Context,
	schoolID string,
	key string,
	value string,
) (map[string]string, error) {

	if !IsValidSchoolConfigKey(key) {
		return nil, fmt.Errorf("%q is not a valid key", key)
	}

	if err := s.repo.UpsertConfig(ctx, schoolID, key, value); err != nil {
		return nil, fmt.Errorf("failed to set config: %w", err)
	}

	s.cache.Delete(configCacheKey(schoolID))

	return s.GetAllConfigValues(ctx, schoolID)
}

// GetAllConfigValues returns every config value for the school (cached).
func (s *SchoolConfigService) GetAllConfigValues(
	ctx context.Context,
	schoolID string,
) (map[string]string, error) {

	ttl := 10 * time.Minute
	cacheKey := configCacheKey(schoolID)

	val, err := s.cache.GetOrSet(cacheKey, ttl, func() (any, error) {
		rows, err := s.repo.GetConfigs(ctx, schoolID)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(rows))
		for _, r := range rows {
			m[r.ConfigKey] = r.ConfigValue
		}

		return m, nil
	})
	if err != nil {
		return nil, err
	}

	switch cfgs := val.(type) {
	case map[string]string:
		return cfgs, nil
	case map[string]interface{}:
		// Redis round-trips the map through JSON
		m := make(map[string]string, len(cfgs))
		for k, v := range cfgs {
			if sv, ok := v.(string); ok {
				m[k] = sv
			}
		}
		return m, nil
	default:
		return nil, errors.New("cache type assertion to map[string]string failed")
	}
}

// GetConfigVal returns a single config value.
func (s *SchoolConfigService) GetConfigVal(
	ctx context.Context,
	schoolID string,
	key string,
) (string, error) {

	if !IsValidSchoolConfigKey(key) {
		return "", fmt.Errorf("%q is not a valid key", key)
	}

	cfgs, err := s.GetAllConfigValues(ctx, schoolID)
	if err != nil {
		return "", err
	}
	return cfgs[key], nil
}

// Location resolves the school's IANA timezone, falling back to UTC when the
// key is unset or invalid.
func (s *SchoolConfigService) Location(ctx context.Context, schoolID string) *time.Location {
	tz, err := s.GetConfigVal(ctx, schoolID, ConfigKeyTimezone)
	if err != nil || tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
