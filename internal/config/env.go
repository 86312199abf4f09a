package config

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"scienceol"`
	Service  string `mapstructure:"SERVICE" default:"molcache"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

type Cache struct {
	// Path of the compound cache file. Relative paths resolve against the
	// working directory.
	Path string `mapstructure:"CACHE_PATH" default:"compounds.json"`
}

type RPC struct {
	PubChem RPCPubChem `mapstructure:",squash"`
}

type RPCPubChem struct {
	Addr       string `mapstructure:"PUBCHEM_ADDR" default:"https://pubchem.ncbi.nlm.nih.gov"`
	TimeoutSec int    `mapstructure:"PUBCHEM_TIMEOUT_SEC" default:"30"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}
