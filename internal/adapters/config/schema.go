package config

// Manifest is the subset of package.json read by the tooling.
type Manifest struct {
	Name            string            `json:"name"`
	Main            string            `json:"main"`
	ExpressX        *ManifestSection  `json:"expressx"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// ManifestSection is the "expressx" object of package.json.
type ManifestSection struct {
	SourceDir string `json:"sourceDir"`
	OutDir    string `json:"outDir"`
	Main      string `json:"main"`
}

// TSConfig is the subset of tsconfig.json consulted for the output directory.
type TSConfig struct {
	CompilerOptions struct {
		OutDir  string `json:"outDir"`
		RootDir string `json:"rootDir"`
	} `json:"compilerOptions"`
}

// SettingsFile represents the structure of the optional expressx.yaml file.
type SettingsFile struct {
	Decorators       []string `yaml:"decorators"`
	ImportGate       string   `yaml:"importGate"`
	ContentHash      bool     `yaml:"contentHash"`
	RestartDebounce  string   `yaml:"restartDebounce"`
	WriteSettle      string   `yaml:"writeSettle"`
	CacheSettle      string   `yaml:"cacheSettle"`
	ShutdownGrace    string   `yaml:"shutdownGrace"`
	Interpreter      string   `yaml:"interpreter"`
	RuntimeBootstrap string   `yaml:"runtimeBootstrap"`
	BatchSize        int      `yaml:"batchSize"`
}
