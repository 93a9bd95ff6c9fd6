package config

const (
	defaultDataDir           = "~/.local/share/gazetteer"
	defaultLogDir            = "~/.local/share/gazetteer/logs"
	defaultCanonicalCSV      = "data/opdr_local.csv"
	defaultCutoff            = 0.5
	defaultSampleSize        = 15000
	defaultMaxCandidateRatio = 10.0
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
			CanonicalCSV: defaultCanonicalCSV,
		},
		Linker: Linker{
			Cutoff:     defaultCutoff,
			SampleSize: defaultSampleSize,
		},
		Blocking: Blocking{
			MaxCandidateRatio: defaultMaxCandidateRatio,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
