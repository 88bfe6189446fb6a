package configuration

// Distinct name types for each configuration category, so that e.g. a fan
// name can never be used where a temp name is expected.
type (
	FilterName      string
	TempName        string
	FanName         string
	ReadonlyFanName string
	MappingName     string
)
