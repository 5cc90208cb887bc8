package domain

// Environment selects the tree a decorator cache describes.
type Environment string

const (
	// EnvDevelopment describes the TypeScript source tree.
	EnvDevelopment Environment = "development"
	// EnvProduction describes the compiled output tree.
	EnvProduction Environment = "production"
)

const (
	// SourceExtension is the extension of framework source files.
	SourceExtension = ".ts"
	// CompiledExtension is the extension of compiled framework files.
	CompiledExtension = ".js"
)

// Extension returns the file extension scanned in this environment.
func (e Environment) Extension() string {
	if e == EnvProduction {
		return CompiledExtension
	}
	return SourceExtension
}

// Valid reports whether e is one of the known environments.
func (e Environment) Valid() bool {
	return e == EnvDevelopment || e == EnvProduction
}

// String implements fmt.Stringer.
func (e Environment) String() string {
	return string(e)
}
