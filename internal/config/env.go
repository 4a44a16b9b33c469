package config

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KEYCHORD_"

// envSetters maps environment variables to the setting they override.
var envSetters = map[string]func(c *Config, v string){
	EnvPrefix + "DEFAULT_MODE": func(c *Config, v string) { c.DefaultMode = v },
	EnvPrefix + "LOG_LEVEL":    func(c *Config, v string) { c.Log.Level = v },
	EnvPrefix + "LOG_FORMAT":   func(c *Config, v string) { c.Log.Format = v },
	EnvPrefix + "MACROS_FILE":  func(c *Config, v string) { c.MacrosFile = v },
}

// ApplyEnv overrides settings from the environment. lookup has the
// signature of os.LookupEnv. Empty values are treated as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for name, set := range envSetters {
		if v, ok := lookup(name); ok {
			set(c, v)
		}
	}
}
