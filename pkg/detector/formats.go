package detector

import "regexp"

// TimestampFormat is a known timestamp shape that detection can suggest.
type TimestampFormat struct {
	Name       string         // Human-readable name
	Pattern    *regexp.Regexp // Compiled regex (set during init)
	PatternStr string         // Pattern to pass as --regex; the whole match is the timestamp
	Layout     string         // Go time layout used to confirm a candidate match
	Examples   []string       // Example timestamps
	Sortable   bool           // True if string order equals chronological order
	Ambiguous  bool           // True if format has date ordering ambiguity (MM/DD vs DD/MM)
}

// DefaultFormats returns the built-in timestamp formats to detect.
// Formats are ordered roughly by specificity (more specific patterns first).
func DefaultFormats() []*TimestampFormat {
	formats := []*TimestampFormat{
		{
			Name:       "ISO 8601 with timezone",
			PatternStr: `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}[+-]\d{2}:\d{2}`,
			Layout:     "2006-01-02T15:04:05-07:00",
			Examples:   []string{"2024-01-15T10:30:00+00:00", "2024-01-15T10:30:00-05:00"},
			Sortable:   true,
		},
		{
			Name:       "ISO 8601 with Z (UTC)",
			PatternStr: `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z`,
			Layout:     "2006-01-02T15:04:05Z",
			Examples:   []string{"2024-01-15T10:30:00Z"},
			Sortable:   true,
		},
		{
			Name:       "ISO 8601 with milliseconds and Z",
			PatternStr: `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z`,
			Layout:     "2006-01-02T15:04:05.000Z",
			Examples:   []string{"2024-01-15T10:30:00.123Z"},
			Sortable:   true,
		},
		{
			Name:       "ISO 8601 with milliseconds",
			PatternStr: `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}`,
			Layout:     "2006-01-02T15:04:05.000",
			Examples:   []string{"2024-01-15T10:30:00.123"},
			Sortable:   true,
		},
		{
			Name:       "ISO 8601",
			PatternStr: `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`,
			Layout:     "2006-01-02T15:04:05",
			Examples:   []string{"2024-01-15T10:30:00"},
			Sortable:   true,
		},
		// logspan's default pattern
		{
			Name:       "Python logging",
			PatternStr: `([\d-]{10})\s([\d:,]{12})`,
			Layout:     "2006-01-02 15:04:05,000",
			Examples:   []string{"2024-01-15 10:30:00,123"},
			Sortable:   true,
		},
		{
			Name:       "Log4j/Java logging",
			PatternStr: `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}`,
			Layout:     "2006-01-02 15:04:05.000",
			Examples:   []string{"2024-01-15 10:30:00.123"},
			Sortable:   true,
		},
		{
			Name:       "Datetime (space-separated)",
			PatternStr: `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"2024-01-15 10:30:00", "[2024-01-15 10:30:00]"},
			Sortable:   true,
		},
		{
			Name:       "Syslog with year",
			PatternStr: `^\w{3} [ \d]\d \d{4} \d{2}:\d{2}:\d{2}`,
			Layout:     "Jan _2 2006 15:04:05",
			Examples:   []string{"Jun 14 2024 15:16:01"},
		},
		{
			Name:       "Syslog (BSD)",
			PatternStr: `^\w{3} [ \d]\d \d{2}:\d{2}:\d{2}`,
			Layout:     "Jan _2 15:04:05",
			Examples:   []string{"Jun 14 15:16:01", "Jan  5 09:30:00"},
		},
		{
			Name:       "Apache/NGINX CLF",
			PatternStr: `\d{2}/\w{3}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4}`,
			Layout:     "02/Jan/2006:15:04:05 -0700",
			Examples:   []string{"15/Jun/2024:10:30:00 +0000"},
		},
		{
			Name:       "Apache error log",
			PatternStr: `\w{3} \w{3} \d{2} \d{2}:\d{2}:\d{2} \d{4}`,
			Layout:     "Mon Jan 02 15:04:05 2006",
			Examples:   []string{"Sun Dec 04 04:47:44 2005"},
		},
		{
			Name:       "Spark/Hadoop short date",
			PatternStr: `^\d{2}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}`,
			Layout:     "06/01/02 15:04:05",
			Examples:   []string{"17/06/09 20:10:40"},
			Sortable:   true,
		},
		{
			Name:       "HDFS compact",
			PatternStr: `^\d{6} \d{6}`,
			Layout:     "060102 150405",
			Examples:   []string{"081109 203615"},
			Sortable:   true,
		},
		{
			Name:       "Unix timestamp (seconds)",
			PatternStr: `^\d{10}\b`,
			Layout:     LayoutUnixSeconds,
			Examples:   []string{"1705315800"},
			Sortable:   true,
		},
		{
			Name:       "Unix timestamp (milliseconds)",
			PatternStr: `^\d{13}\b`,
			Layout:     LayoutUnixMillis,
			Examples:   []string{"1705315800000"},
			Sortable:   true,
		},
		{
			Name:       "US date format (MM/DD/YYYY)",
			PatternStr: `\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}`,
			Layout:     "01/02/2006 15:04:05",
			Examples:   []string{"01/15/2024 10:30:00"},
			Ambiguous:  true,
		},
	}

	// Compile all patterns
	for _, f := range formats {
		f.Pattern = regexp.MustCompile(f.PatternStr)
	}

	return formats
}
