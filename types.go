package wirecodec

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore (last value wins), Warn or Error.
}

// ParseOpt bundles document reading options. The zero value enforces nothing.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int   // maximum container nesting; 0 means unlimited
	MaxBytes   int64 // maximum input size; 0 means unlimited
	// OnWarning receives non-fatal issues such as duplicate keys under Warn.
	OnWarning func(Issue)
}
