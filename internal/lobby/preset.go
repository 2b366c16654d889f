package lobby

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"citadels-engine/internal/engine"
)

// Preset is the YAML form of a game configuration:
//
//	roles: [Assassin, Thief, Magician, King, Bishop, Merchant, Architect, Warlord, Artist]
//	role_anarchy: false
//	districts:
//	  Library: Always
//	  SecretVault: Never
type Preset struct {
	Roles       []string          `yaml:"roles"`
	RoleAnarchy bool              `yaml:"role_anarchy"`
	Districts   map[string]string `yaml:"districts"`
}

// LoadPreset reads a preset file into a game configuration.
func LoadPreset(path string) (engine.GameConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return engine.GameConfig{}, fmt.Errorf("open preset: %w", err)
	}
	defer f.Close()
	return ReadPreset(f)
}

// ReadPreset decodes a preset. Roles default to every role when omitted.
func ReadPreset(r io.Reader) (engine.GameConfig, error) {
	var p Preset
	if err := yaml.NewDecoder(r).Decode(&p); err != nil && err != io.EOF {
		return engine.GameConfig{}, fmt.Errorf("decode preset: %w", err)
	}
	return p.Config()
}

// Config converts the preset, rejecting unknown names and rosters that leave
// a rank empty.
func (p Preset) Config() (engine.GameConfig, error) {
	cfg := engine.DefaultConfig()
	cfg.RoleAnarchy = p.RoleAnarchy

	if len(p.Roles) > 0 {
		cfg.Roles = nil
		for _, name := range p.Roles {
			var r engine.CharacterRole
			if err := r.UnmarshalText([]byte(name)); err != nil {
				return engine.GameConfig{}, fmt.Errorf("preset roles: %w", err)
			}
			cfg.Roles = append(cfg.Roles, r)
		}
	}
	for name, option := range p.Districts {
		var d engine.DistrictName
		if err := d.UnmarshalText([]byte(name)); err != nil {
			return engine.GameConfig{}, fmt.Errorf("preset districts: %w", err)
		}
		if !d.IsUnique() {
			return engine.GameConfig{}, fmt.Errorf("preset districts: %s is not a unique district", d)
		}
		var o engine.DistrictOption
		if err := o.UnmarshalText([]byte(option)); err != nil {
			return engine.GameConfig{}, fmt.Errorf("preset districts: %w", err)
		}
		cfg.Districts[d] = o
	}

	if err := cfg.Validate(); err != nil {
		return engine.GameConfig{}, fmt.Errorf("preset: %w", err)
	}
	return cfg, nil
}
