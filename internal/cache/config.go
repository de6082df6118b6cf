package cache

type Config struct {
	// Type can be "memory" or "redis". Change it in config.json
	Type            Type        `json:"type"`
	MaxEntries      int         `json:"max_entries"`
	JanitorInterval int         `json:"janitor_interval"`
	Redis           RedisConfig `json:"redis"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	// Fallback serves reads and writes from memory while redis is unreachable.
	Fallback bool `json:"fallback"`
}
