package emu

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"aysynth/emu/log"
	"aysynth/hw/hwdefs"
	"aysynth/hw/psg"
)

type Config struct {
	Chip     ChipConfig     `toml:"chip"`
	Channels ChannelsConfig `toml:"channels"`
	Noise    NoiseConfig    `toml:"noise"`
	Envelope EnvelopeConfig `toml:"envelope"`
}

type ChipConfig struct {
	Variant psg.Variant `toml:"variant"`

	// Clock is the chip clock in Hz. It's overridden by ClockPreset, but must
	// be valid whenever it's set.
	Clock       float64 `toml:"clock"`
	ClockPreset string  `toml:"clock_preset,omitempty"`

	SampleRate int  `toml:"sample_rate"`
	RemoveDC   bool `toml:"remove_dc"`
}

// ClockRate returns the effective chip clock.
func (cc ChipConfig) ClockRate() (float64, error) {
	if cc.Clock != 0 && (!(cc.Clock > 0) || math.IsInf(cc.Clock, 1)) {
		return 0, fmt.Errorf("%w: clock rate %v", psg.ErrInvalidConfig, cc.Clock)
	}
	if cc.ClockPreset == "" {
		return cc.Clock, nil
	}
	hz, ok := hwdefs.ClockPreset(cc.ClockPreset)
	if !ok {
		return 0, fmt.Errorf("%w: unknown clock preset %q (valid: %s)",
			psg.ErrInvalidConfig, cc.ClockPreset, strings.Join(hwdefs.ClockPresetNames(), ", "))
	}
	return hz, nil
}

func (cc ChipConfig) psgConfig() (psg.Config, error) {
	clock, err := cc.ClockRate()
	if err != nil {
		return psg.Config{}, err
	}
	cfg := psg.Config{
		Variant:    cc.Variant,
		ClockRate:  clock,
		SampleRate: cc.SampleRate,
	}
	return cfg, cfg.Check()
}

type ChannelsConfig struct {
	A ChannelConfig `toml:"a"`
	B ChannelConfig `toml:"b"`
	C ChannelConfig `toml:"c"`
}

func (cc *ChannelsConfig) channel(ch psg.Channel) *ChannelConfig {
	return [...]*ChannelConfig{&cc.A, &cc.B, &cc.C}[ch]
}

type ChannelConfig struct {
	Period     int     `toml:"period"`
	Volume     int     `toml:"volume"`
	Pan        float64 `toml:"pan"` // 0: left, 1: right
	EqualPower bool    `toml:"equal_power"`

	// Mixer
	Tone     bool `toml:"tone"`
	Noise    bool `toml:"noise"`
	Envelope bool `toml:"envelope"`
}

type NoiseConfig struct {
	Period int `toml:"period"`
}

type EnvelopeConfig struct {
	Period int `toml:"period"`
	Shape  int `toml:"shape"`
}

// DefaultConfig returns a ZX Spectrum AY with its channels spread across
// the stereo field (A left, B center, C right) and muted.
func DefaultConfig() Config {
	cfg := Config{
		Chip: ChipConfig{
			Variant:     psg.AY,
			Clock:       hwdefs.ClockZXSpectrum,
			ClockPreset: "zx",
			SampleRate:  44100,
			RemoveDC:    true,
		},
		Envelope: EnvelopeConfig{Period: 1},
	}
	for i, pan := range []float64{0.25, 0.5, 0.75} {
		*cfg.Channels.channel(psg.Channel(i)) = ChannelConfig{
			Period: 1,
			Pan:    pan,
			Tone:   true,
		}
	}
	return cfg
}

// Check validates the whole configuration and reports all the problems it
// finds.
func (cfg *Config) Check() error {
	var errs []error
	if _, err := cfg.Chip.psgConfig(); err != nil {
		errs = append(errs, fmt.Errorf("chip: %w", err))
	}

	for i := 0; i < hwdefs.NumToneChannels; i++ {
		ch := psg.Channel(i)
		chcfg := cfg.Channels.channel(ch)
		if chcfg.Period < 0 || chcfg.Period > psg.MaxTonePeriod {
			errs = append(errs, fmt.Errorf("channel %v: %w: period %d", ch, psg.ErrOutOfRange, chcfg.Period))
		}
		if chcfg.Volume < 0 || chcfg.Volume > psg.MaxVolume {
			errs = append(errs, fmt.Errorf("channel %v: %w: volume %d", ch, psg.ErrOutOfRange, chcfg.Volume))
		}
		if math.IsNaN(chcfg.Pan) {
			errs = append(errs, fmt.Errorf("channel %v: %w: pan is NaN", ch, psg.ErrOutOfRange))
		}
	}

	if cfg.Noise.Period < 0 || cfg.Noise.Period > psg.MaxNoisePeriod {
		errs = append(errs, fmt.Errorf("noise: %w: period %d", psg.ErrOutOfRange, cfg.Noise.Period))
	}
	if cfg.Envelope.Period < 0 || cfg.Envelope.Period > psg.MaxEnvelopePeriod {
		errs = append(errs, fmt.Errorf("envelope: %w: period %d", psg.ErrOutOfRange, cfg.Envelope.Period))
	}
	if cfg.Envelope.Shape < 0 || cfg.Envelope.Shape > psg.MaxEnvelopeShape {
		errs = append(errs, fmt.Errorf("envelope: %w: shape %d", psg.ErrOutOfRange, cfg.Envelope.Shape))
	}
	return errors.Join(errs...)
}

// DecodeConfig reads a TOML configuration from r. Settings absent from the
// document keep their default value. Unknown keys are an error.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, err
	}
	if err := checkDecoded(&cfg, md); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads the TOML configuration file at path.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	if err := checkDecoded(&cfg, md); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	log.ModConfig.InfoZ("loaded config").String("path", path).End()
	return cfg, nil
}

func checkDecoded(cfg *Config, md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	// An explicit clock without a preset disables the default preset.
	if md.IsDefined("chip", "clock") && !md.IsDefined("chip", "clock_preset") {
		cfg.Chip.ClockPreset = ""
	}
	return cfg.Check()
}

// EncodeConfig writes cfg to w, as TOML.
func EncodeConfig(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

const DefaultFileMode = os.FileMode(0755)

// ConfigDir returns the aysynth directory under the user config directory,
// creating it if needed.
var ConfigDir = sync.OnceValues(func() (string, error) {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %v", err)
	}

	dir := filepath.Join(cfgdir, "aysynth")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %v", dir, err)
	}
	return dir, nil
})

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the aysynth config
// directory, or provide a default one.
func LoadConfigOrDefault() Config {
	dir, err := ConfigDir()
	if err != nil {
		log.ModConfig.Warnf("%v, using default config", err)
		return DefaultConfig()
	}

	path := filepath.Join(dir, cfgFilename)
	cfg, err := LoadConfig(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.ModConfig.Infof("no config at %s, using default", path)
		} else {
			log.ModConfig.Warnf("invalid config, using default: %v", err)
		}
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig into the aysynth config directory.
func SaveConfig(cfg Config) error {
	if err := cfg.Check(); err != nil {
		return err
	}
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, cfgFilename), buf, 0644)
}
