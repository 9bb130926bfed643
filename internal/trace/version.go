package trace

// FormatVersion is the schema version stamped on every run.
const FormatVersion = "1"
