package config

var Presets = map[string]*Config{
	"grid": {
		Ranks: 2, Steps: 1, MaxMass: 4.0, Theta: 0.5, LeafCap: 1,
		Scene: SceneConfig{Kind: "grid", N: 8, Spacing: 1.0},
	},
	"grid-fine": {
		Ranks: 4, Steps: 1, MaxMass: 2.0, Theta: 0.3, LeafCap: 1,
		Scene: SceneConfig{Kind: "grid", N: 12, Spacing: 1.0},
	},
	"cluster": {
		Ranks: 2, Steps: 1, MaxMass: 8.0, Theta: 0.5, LeafCap: 8,
		Scene: SceneConfig{Kind: "cluster", N: 1000, Spacing: 10.0, Seed: 1},
	},
	"pair": {
		Ranks: 2, Steps: 1, MaxMass: 1.0, Theta: 0.5, LeafCap: 1,
		Scene: SceneConfig{Kind: "pair", Spacing: 1.0},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
