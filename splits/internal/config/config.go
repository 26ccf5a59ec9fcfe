package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/subsplits/subsplits/splits/internal/compute"
	"github.com/subsplits/subsplits/splits/internal/format"
	"github.com/subsplits/subsplits/splits/internal/layout"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultRefreshInterval   = 100 * time.Millisecond
	DefaultVisibleRows       = 8
	DefaultHTTPPort          = 8080
	DefaultFrameTTL          = 30 * time.Second
	DefaultBroadcastInterval = time.Second
)

// Config is the top-level configuration of the splits binary.
type Config struct {
	Source Source `yaml:"source"`

	// RefreshInterval is how often the board recomputes its rows.
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	Layout Layout       `yaml:"layout"`
	Server ServerConfig `yaml:"server"`
}

// Source describes where run and timer state are read from.
type Source struct {
	// Type is one of: file | http | sqlite.
	Type string `yaml:"type"`

	// Path is the run YAML file (file) or the database file (sqlite).
	Path string `yaml:"path"`

	// Endpoint is the timer's JSON state URL (http).
	Endpoint string `yaml:"endpoint"`

	// Run names the stored run to load (sqlite).
	Run string `yaml:"run"`

	// Timeout bounds one http poll.
	Timeout time.Duration `yaml:"timeout"`

	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig specifies how the http source authenticates to the timer.
type AuthConfig struct {
	// Mode is one of: apikey | bearer | basic | none.
	Mode string `yaml:"mode"`

	// Header carries the API key; defaults to X-API-Key.
	Header string `yaml:"header"`
	KeyEnv string `yaml:"key_env"`

	TokenEnv string `yaml:"token_env"`

	Username    string `yaml:"username"`
	PasswordEnv string `yaml:"password_env"`
}

// Key returns the API key resolved from the environment.
func (a AuthConfig) Key() string { return getenv(a.KeyEnv) }

// Token returns the bearer token resolved from the environment.
func (a AuthConfig) Token() string { return getenv(a.TokenEnv) }

// Password returns the basic-auth password resolved from the environment.
func (a AuthConfig) Password() string { return getenv(a.PasswordEnv) }

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

// Layout holds the display settings of the splits list.
type Layout struct {
	// VisibleRows is the number of rows the board keeps engines for.
	VisibleRows int `yaml:"visible_rows"`

	// PreviewRows is the number of upcoming rows kept below the current one.
	PreviewRows         int  `yaml:"preview_rows"`
	AlwaysShowLastSplit bool `yaml:"always_show_last_split"`
	ShowSectionHeader   bool `yaml:"show_section_header"`

	Columns []Column `yaml:"columns"`

	// Accuracies: seconds | tenths | hundredths | milliseconds.
	SplitTimesAccuracy   string `yaml:"split_times_accuracy"`
	DeltasAccuracy       string `yaml:"deltas_accuracy"`
	HeaderAccuracy       string `yaml:"header_accuracy"`
	SectionTimerAccuracy string `yaml:"section_timer_accuracy"`
	DropDecimals         bool   `yaml:"drop_decimals"`

	IndentSubsplits       bool `yaml:"indent_subsplits"`
	HideSubsplits         bool `yaml:"hide_subsplits"`
	AutomaticAbbreviation bool `yaml:"automatic_abbreviation"`

	Header Header `yaml:"header"`
	Colors Colors `yaml:"colors"`
}

// Column configures one column of the splits list.
type Column struct {
	Name string `yaml:"name"`

	// Type is one of the compute column kinds, e.g. delta or segment_time.
	Type string `yaml:"type"`

	// Comparison defaults to the timer's current comparison.
	Comparison string `yaml:"comparison"`

	// TimingMethod is one of: current | real | game.
	TimingMethod string `yaml:"timing_method"`

	// Variable names the custom variable for custom_variable columns.
	Variable string `yaml:"variable"`
}

// Header configures section header rows.
type Header struct {
	Text         bool   `yaml:"text"`
	Times        bool   `yaml:"times"`
	SectionTimer bool   `yaml:"section_timer"`
	Comparison   string `yaml:"comparison"`
	TimingMethod string `yaml:"timing_method"`
}

// Colors are "#RRGGBB" or "#RRGGBBAA" strings. Name, time, delta and header
// colors apply only when their override flag is set.
type Colors struct {
	OverrideText   bool `yaml:"override_text"`
	OverrideTimes  bool `yaml:"override_times"`
	OverrideDeltas bool `yaml:"override_deltas"`
	OverrideHeader bool `yaml:"override_header"`

	Text          string `yaml:"text"`
	AheadGaining  string `yaml:"ahead_gaining"`
	AheadLosing   string `yaml:"ahead_losing"`
	BehindGaining string `yaml:"behind_gaining"`
	BehindLosing  string `yaml:"behind_losing"`
	BeforeNames   string `yaml:"before_names"`
	CurrentNames  string `yaml:"current_names"`
	AfterNames    string `yaml:"after_names"`
	BeforeTimes   string `yaml:"before_times"`
	CurrentTimes  string `yaml:"current_times"`
	AfterTimes    string `yaml:"after_times"`
	Deltas        string `yaml:"deltas"`
	HeaderText    string `yaml:"header_text"`
	HeaderTimes   string `yaml:"header_times"`
	SectionTimer  string `yaml:"section_timer"`
}

// ServerConfig holds the settings of the serve command.
type ServerConfig struct {
	HTTPPort int `yaml:"http_port"`

	Auth ServerAuthConfig `yaml:"auth"`

	// FrameTTL evicts frames of rows that stopped being computed.
	FrameTTL time.Duration `yaml:"frame_ttl"`

	// BroadcastInterval is how often websocket clients receive the board.
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
}

// ServerAuthConfig configures REST and websocket authentication.
type ServerAuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`
	// Header carries the key; defaults to X-API-Key.
	Header string `yaml:"header"`
	KeyEnv string `yaml:"key_env"`
}

// Key returns the server API key resolved from the environment.
func (a ServerAuthConfig) Key() string { return getenv(a.KeyEnv) }

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Defaults returns a Config pre-populated with default values.
func Defaults() *Config {
	p := compute.DefaultPalette()
	return &Config{
		Source:          Source{Type: "file", Timeout: 2 * time.Second},
		RefreshInterval: DefaultRefreshInterval,
		Layout: Layout{
			VisibleRows:         DefaultVisibleRows,
			PreviewRows:         1,
			AlwaysShowLastSplit: true,
			ShowSectionHeader:   true,
			Columns: []Column{
				{Name: "+/-", Type: compute.Delta.String()},
				{Name: "Time", Type: compute.SplitTime.String()},
			},
			SplitTimesAccuracy:    format.Hundredths.String(),
			DeltasAccuracy:        format.Tenths.String(),
			HeaderAccuracy:        format.Seconds.String(),
			SectionTimerAccuracy:  format.Tenths.String(),
			DropDecimals:          true,
			IndentSubsplits:       true,
			AutomaticAbbreviation: true,
			Header: Header{
				Text:         true,
				Times:        true,
				SectionTimer: true,
			},
			Colors: Colors{
				Text:          p.Text,
				AheadGaining:  p.AheadGaining,
				AheadLosing:   p.AheadLosing,
				BehindGaining: p.BehindGaining,
				BehindLosing:  p.BehindLosing,
				BeforeNames:   p.BeforeNames,
				CurrentNames:  p.CurrentNames,
				AfterNames:    p.AfterNames,
				BeforeTimes:   p.BeforeTimes,
				CurrentTimes:  p.CurrentTimes,
				AfterTimes:    p.AfterTimes,
				Deltas:        p.Deltas,
				HeaderText:    p.HeaderText,
				HeaderTimes:   p.HeaderTimes,
				SectionTimer:  p.SectionTimer,
			},
		},
		Server: ServerConfig{
			HTTPPort:          DefaultHTTPPort,
			FrameTTL:          DefaultFrameTTL,
			BroadcastInterval: DefaultBroadcastInterval,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	src := cfg.Source
	switch src.Type {
	case "file", "sqlite":
		if src.Path == "" {
			return fmt.Errorf("source.path is required for %s sources", src.Type)
		}
	case "http":
		if src.Endpoint == "" {
			return fmt.Errorf("source.endpoint is required for http sources")
		}
	default:
		return fmt.Errorf("source: unknown type %q", src.Type)
	}
	if src.Type == "sqlite" && src.Run == "" {
		return fmt.Errorf("source.run is required for sqlite sources")
	}
	switch src.Auth.Mode {
	case "apikey", "bearer", "basic", "none", "":
	default:
		return fmt.Errorf("source: unknown auth mode %q", src.Auth.Mode)
	}

	if cfg.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive")
	}
	if cfg.Layout.VisibleRows <= 0 {
		return fmt.Errorf("layout.visible_rows must be positive")
	}
	if cfg.Layout.PreviewRows < 0 || cfg.Layout.PreviewRows >= cfg.Layout.VisibleRows {
		return fmt.Errorf("layout.preview_rows must be between 0 and visible_rows-1")
	}
	if _, err := cfg.Layout.Settings(); err != nil {
		return err
	}
	if _, err := cfg.Layout.ColumnSpecs(); err != nil {
		return err
	}

	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth: unknown mode %q", cfg.Server.Auth.Mode)
	}
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d out of range", cfg.Server.HTTPPort)
	}
	if cfg.Server.FrameTTL <= 0 || cfg.Server.BroadcastInterval <= 0 {
		return fmt.Errorf("server: frame_ttl and broadcast_interval must be positive")
	}
	return nil
}

// Settings converts the layout into the row engine's settings snapshot.
func (l Layout) Settings() (compute.Settings, error) {
	var s compute.Settings
	accuracies := []struct {
		field string
		value string
		dst   *format.Accuracy
	}{
		{"split_times_accuracy", l.SplitTimesAccuracy, &s.Formats.SplitTimes},
		{"deltas_accuracy", l.DeltasAccuracy, &s.Formats.Deltas},
		{"header_accuracy", l.HeaderAccuracy, &s.Formats.Header},
		{"section_timer_accuracy", l.SectionTimerAccuracy, &s.Formats.SectionTimer},
	}
	for _, a := range accuracies {
		acc, err := format.ParseAccuracy(a.value)
		if err != nil {
			return s, fmt.Errorf("layout.%s: %w", a.field, err)
		}
		*a.dst = acc
	}
	s.Formats.DropDecimals = l.DropDecimals

	method, ok := compute.ParseMethodChoice(l.Header.TimingMethod)
	if !ok {
		return s, fmt.Errorf("layout.header.timing_method: unknown method %q", l.Header.TimingMethod)
	}
	s.Header = compute.HeaderSettings{
		Text:         l.Header.Text,
		Times:        l.Header.Times,
		SectionTimer: l.Header.SectionTimer,
		Comparison:   comparisonOrCurrent(l.Header.Comparison),
		Method:       method,
	}
	s.IndentSubsplits = l.IndentSubsplits
	s.HideSubsplits = l.HideSubsplits
	s.AutomaticAbbreviation = l.AutomaticAbbreviation

	p, err := l.Colors.palette()
	if err != nil {
		return s, err
	}
	s.Colors = p
	return s, nil
}

// RowOptions converts the layout into row planning options.
func (l Layout) RowOptions() layout.Options {
	return layout.Options{
		Visible:        l.VisibleRows,
		Preview:        l.PreviewRows,
		AlwaysShowLast: l.AlwaysShowLastSplit,
		HideSubsplits:  l.HideSubsplits,
		ShowHeader:     l.ShowSectionHeader,
	}
}

// ColumnSpecs converts the configured columns.
func (l Layout) ColumnSpecs() ([]compute.ColumnSpec, error) {
	specs := make([]compute.ColumnSpec, 0, len(l.Columns))
	for i, c := range l.Columns {
		kind, ok := compute.ParseColumnKind(c.Type)
		if !ok {
			return nil, fmt.Errorf("layout.columns[%d] %q: unknown type %q", i, c.Name, c.Type)
		}
		method, ok := compute.ParseMethodChoice(c.TimingMethod)
		if !ok {
			return nil, fmt.Errorf("layout.columns[%d] %q: unknown timing method %q", i, c.Name, c.TimingMethod)
		}
		if kind == compute.CustomVariable && c.Variable == "" {
			return nil, fmt.Errorf("layout.columns[%d] %q: variable is required", i, c.Name)
		}
		specs = append(specs, compute.ColumnSpec{
			Name:       c.Name,
			Kind:       kind,
			Comparison: comparisonOrCurrent(c.Comparison),
			Method:     method,
			Variable:   c.Variable,
		})
	}
	return specs, nil
}

func comparisonOrCurrent(name string) string {
	if name == "" {
		return compute.CurrentComparison
	}
	return name
}

func (c Colors) palette() (compute.Palette, error) {
	p := compute.Palette{
		OverrideText:   c.OverrideText,
		OverrideTimes:  c.OverrideTimes,
		OverrideDeltas: c.OverrideDeltas,
		OverrideHeader: c.OverrideHeader,
	}
	fields := []struct {
		name  string
		value string
		dst   *string
	}{
		{"text", c.Text, &p.Text},
		{"ahead_gaining", c.AheadGaining, &p.AheadGaining},
		{"ahead_losing", c.AheadLosing, &p.AheadLosing},
		{"behind_gaining", c.BehindGaining, &p.BehindGaining},
		{"behind_losing", c.BehindLosing, &p.BehindLosing},
		{"before_names", c.BeforeNames, &p.BeforeNames},
		{"current_names", c.CurrentNames, &p.CurrentNames},
		{"after_names", c.AfterNames, &p.AfterNames},
		{"before_times", c.BeforeTimes, &p.BeforeTimes},
		{"current_times", c.CurrentTimes, &p.CurrentTimes},
		{"after_times", c.AfterTimes, &p.AfterTimes},
		{"deltas", c.Deltas, &p.Deltas},
		{"header_text", c.HeaderText, &p.HeaderText},
		{"header_times", c.HeaderTimes, &p.HeaderTimes},
		{"section_timer", c.SectionTimer, &p.SectionTimer},
	}
	for _, f := range fields {
		if !isHexColor(f.value) {
			return p, fmt.Errorf("layout.colors.%s: invalid color %q", f.name, f.value)
		}
		*f.dst = strings.ToUpper(f.value)
	}
	return p, nil
}

func isHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 9) {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
