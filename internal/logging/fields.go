package logging

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// Path is a file on disk
	Path = "path"

	// Member is an entry of a static library
	Member = "member"

	// Table names a header table
	Table = "table"

	Index  = "index"
	Offset = "offset"
	Size   = "size"

	// Value is a raw field that failed validation
	Value = "value"
)
