package payouts

import (
	"errors"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"github.com/bramblecoop/bramble/types"
)

var ErrInvalidConfig = errors.New("invalid payout config")

// Policy holds the fixed values one aggregation run works with.
type Policy struct {
	MinPayout       decimal.Decimal
	ProcessingFee   decimal.Decimal
	Lookback        time.Duration
	SettlementDelay time.Duration
	RunTimeout      time.Duration
	EntityTypes     []types.EntityType
}

func DefaultPolicy() Policy {
	return Policy{
		MinPayout:       decimal.New(1000, -2),
		ProcessingFee:   decimal.New(200, -2),
		Lookback:        7 * 24 * time.Hour,
		SettlementDelay: 3 * 24 * time.Hour,
		RunTimeout:      10 * time.Minute,
		EntityTypes:     []types.EntityType{types.EntityInstructor, types.EntityCoop},
	}
}

// Schedule is the weekly trigger of the payout job.
type Schedule struct {
	Weekday  time.Weekday
	At       string
	Location *time.Location
}

func DefaultSchedule() Schedule {
	return Schedule{Weekday: time.Monday, At: "00:00:00", Location: time.Local}
}

// Cron renders the schedule as a standard five-field cron expression.
func (s Schedule) Cron() string {
	hour, minute := 0, 0
	fmt.Sscanf(s.At, "%d:%d", &hour, &minute)

	return fmt.Sprintf("%d %d * * %d", minute, hour, int(s.Weekday))
}

type Config struct {
	Schedule Schedule
	Policy   Policy
}

type fileSchedule struct {
	Weekday  string `yaml:"weekday" validate:"in:sunday,monday,tuesday,wednesday,thursday,friday,saturday"`
	At       string `yaml:"at"`
	Location string `yaml:"location"`
}

type fileConfig struct {
	Schedule        fileSchedule `yaml:"schedule"`
	MinPayout       string       `yaml:"min_payout"`
	ProcessingFee   string       `yaml:"processing_fee"`
	Lookback        string       `yaml:"lookback"`
	SettlementDelay string       `yaml:"settlement_delay"`
	RunTimeout      string       `yaml:"run_timeout"`
	EntityTypes     []string     `yaml:"entity_types"`
}

func LoadConfig(path string) (*Config, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(buf)
}

// ParseConfig reads a yaml payout config. Missing keys keep their defaults.
func ParseConfig(buf []byte) (*Config, error) {
	fc := &fileConfig{}
	if err := yaml.Unmarshal(buf, fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fc.Schedule.Weekday = strings.ToLower(fc.Schedule.Weekday)
	v := validate.Struct(&fc.Schedule)
	if !v.Validate() {
		return nil, fmt.Errorf("%w: schedule: %s", ErrInvalidConfig, v.Errors.One())
	}

	cfg := &Config{Schedule: DefaultSchedule(), Policy: DefaultPolicy()}

	if len(fc.Schedule.Weekday) > 0 {
		cfg.Schedule.Weekday = weekdays[fc.Schedule.Weekday]
	}
	if len(fc.Schedule.At) > 0 {
		if !validClock(fc.Schedule.At) {
			return nil, fmt.Errorf("%w: schedule: invalid time %q", ErrInvalidConfig, fc.Schedule.At)
		}
		cfg.Schedule.At = fc.Schedule.At
	}
	if len(fc.Schedule.Location) > 0 {
		loc, err := time.LoadLocation(fc.Schedule.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: location: %v", ErrInvalidConfig, err)
		}
		cfg.Schedule.Location = loc
	}

	p := &cfg.Policy
	if err := parseAmount(fc.MinPayout, &p.MinPayout); err != nil {
		return nil, fmt.Errorf("%w: min_payout: %v", ErrInvalidConfig, err)
	}
	if err := parseAmount(fc.ProcessingFee, &p.ProcessingFee); err != nil {
		return nil, fmt.Errorf("%w: processing_fee: %v", ErrInvalidConfig, err)
	}
	if err := parseDuration(fc.Lookback, &p.Lookback); err != nil {
		return nil, fmt.Errorf("%w: lookback: %v", ErrInvalidConfig, err)
	}
	if err := parseDuration(fc.SettlementDelay, &p.SettlementDelay); err != nil {
		return nil, fmt.Errorf("%w: settlement_delay: %v", ErrInvalidConfig, err)
	}
	if err := parseDuration(fc.RunTimeout, &p.RunTimeout); err != nil {
		return nil, fmt.Errorf("%w: run_timeout: %v", ErrInvalidConfig, err)
	}
	if len(fc.EntityTypes) > 0 {
		p.EntityTypes = p.EntityTypes[:0]
		for _, t := range fc.EntityTypes {
			t = strings.ToUpper(t)
			if !types.IsEntityType(t) {
				return nil, fmt.Errorf("%w: unknown entity type %q", ErrInvalidConfig, t)
			}
			p.EntityTypes = append(p.EntityTypes, t)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (p Policy) Validate() error {
	if p.MinPayout.IsNegative() {
		return fmt.Errorf("%w: min_payout must not be negative", ErrInvalidConfig)
	}
	if p.ProcessingFee.IsNegative() {
		return fmt.Errorf("%w: processing_fee must not be negative", ErrInvalidConfig)
	}
	if p.Lookback <= 0 {
		return fmt.Errorf("%w: lookback must be positive", ErrInvalidConfig)
	}
	if p.SettlementDelay < 0 {
		return fmt.Errorf("%w: settlement_delay must not be negative", ErrInvalidConfig)
	}
	if p.RunTimeout < 0 {
		return fmt.Errorf("%w: run_timeout must not be negative", ErrInvalidConfig)
	}
	if len(p.EntityTypes) == 0 {
		return fmt.Errorf("%w: entity_types must not be empty", ErrInvalidConfig)
	}

	return nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func validClock(s string) bool {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}

	return false
}

func parseAmount(s string, dst *decimal.Decimal) error {
	if len(s) == 0 {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*dst = d

	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	if len(s) == 0 {
		return nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = d

	return nil
}
