package scanner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/ccollicutt/logspan/pkg/matcher"
)

// lastByLines is the straightforward definition of the last match: split the
// whole input into lines and keep the final hit.
func lastByLines(content string, m *matcher.Matcher) Match {
	lines := strings.Split(content, "\n")
	if strings.HasSuffix(content, "\n") {
		lines = lines[:len(lines)-1]
	}
	if content == "" {
		lines = nil
	}
	last := NoMatch
	for _, line := range lines {
		if hit, ok := m.Find([]byte(line)); ok {
			last = Matched(string(hit))
		}
	}
	return last
}

var scanCases = []struct {
	name      string
	content   string
	wantFirst Match
	wantLast  Match
}{
	{
		name:      "two timestamped lines",
		content:   "2024-01-01 00:00:00,000 start\n2024-01-01 00:00:05,500 end\n",
		wantFirst: Matched("2024-01-01 00:00:00,000"),
		wantLast:  Matched("2024-01-01 00:00:05,500"),
	},
	{
		name:      "no trailing newline",
		content:   "2024-01-01 00:00:00,000 start\n2024-01-01 00:00:05,500 end",
		wantFirst: Matched("2024-01-01 00:00:00,000"),
		wantLast:  Matched("2024-01-01 00:00:05,500"),
	},
	{
		name:      "untimestamped header and trailer",
		content:   "header\n\n2024-01-01 00:00:01,000 a\nmiddle\n2024-01-01 00:00:02,000 b\ntrace line 1\ntrace line 2\n\n",
		wantFirst: Matched("2024-01-01 00:00:01,000"),
		wantLast:  Matched("2024-01-01 00:00:02,000"),
	},
	{
		name:      "no matching lines",
		content:   "alpha\nbeta\ngamma\n",
		wantFirst: NoMatch,
		wantLast:  NoMatch,
	},
	{
		name:      "single matching line with newline",
		content:   "2024-01-01 00:00:00,000 only\n",
		wantFirst: Matched("2024-01-01 00:00:00,000"),
		wantLast:  Matched("2024-01-01 00:00:00,000"),
	},
	{
		name:      "single matching line without newline",
		content:   "2024-01-01 00:00:00,000 only",
		wantFirst: Matched("2024-01-01 00:00:00,000"),
		wantLast:  Matched("2024-01-01 00:00:00,000"),
	},
	{
		name:      "single non-matching line without newline",
		content:   "nothing to see",
		wantFirst: NoMatch,
		wantLast:  NoMatch,
	},
	{
		name:      "only the first line matches",
		content:   "2023-12-31 23:59:59,999 boot\nline\nline\n",
		wantFirst: Matched("2023-12-31 23:59:59,999"),
		wantLast:  Matched("2023-12-31 23:59:59,999"),
	},
	{
		name:      "empty file",
		content:   "",
		wantFirst: NoMatch,
		wantLast:  NoMatch,
	},
	{
		name:      "lone newline",
		content:   "\n",
		wantFirst: NoMatch,
		wantLast:  NoMatch,
	},
	{
		name:      "newlines only",
		content:   "\n\n\n",
		wantFirst: NoMatch,
		wantLast:  NoMatch,
	},
	{
		name:      "first match on a line wins",
		content:   "2024-01-01 00:00:00,000 x\n2024-02-02 00:00:00,000 then 2024-03-03 00:00:00,000\n",
		wantFirst: Matched("2024-01-01 00:00:00,000"),
		wantLast:  Matched("2024-02-02 00:00:00,000"),
	},
	{
		name:      "crlf line endings",
		content:   "2024-01-01 00:00:00,000 a\r\n2024-01-01 00:00:09,000 b\r\n",
		wantFirst: Matched("2024-01-01 00:00:00,000"),
		wantLast:  Matched("2024-01-01 00:00:09,000"),
	},
}

func TestForward(t *testing.T) {
	m := matcher.Default()

	for _, tt := range scanCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Forward(strings.NewReader(tt.content), m)
			if err != nil {
				t.Fatalf("Forward() error = %v", err)
			}
			if got != tt.wantFirst {
				t.Errorf("Forward() = %+v, want %+v", got, tt.wantFirst)
			}
		})
	}
}

func TestBackward(t *testing.T) {
	m := matcher.Default()
	blockSizes := []int{1, 2, 3, 7, 16, DefaultBlockSize}

	for _, tt := range scanCases {
		for _, bs := range blockSizes {
			t.Run(fmt.Sprintf("%s/block=%d", tt.name, bs), func(t *testing.T) {
				r := strings.NewReader(tt.content)
				got, err := Backward(r, r.Size(), m, WithBlockSize(bs))
				if err != nil {
					t.Fatalf("Backward() error = %v", err)
				}
				if got != tt.wantLast {
					t.Errorf("Backward() = %+v, want %+v", got, tt.wantLast)
				}
			})
		}
	}
}

func TestBackward_AgreesWithLineSplit(t *testing.T) {
	// Patterns whose outcome depends on line boundaries.
	patterns := []string{
		matcher.DefaultPattern,
		`^$`,
		`^[a-z]+$`,
		`\d$`,
		`^x`,
	}
	contents := []string{
		"",
		"\n",
		"x",
		"x\n",
		"\n\nx1\n\n",
		"abc\n123\nx9\nzz\n",
		"abc\n123\nx9\nzz",
		"lead\n\ntrail",
		"2024-01-01 00:00:00,000\n\n",
	}

	for _, p := range patterns {
		m := matcher.FromRegexp(regexp.MustCompile(p))
		for _, c := range contents {
			want := lastByLines(c, m)
			for _, bs := range []int{1, 4, DefaultBlockSize} {
				r := strings.NewReader(c)
				got, err := Backward(r, r.Size(), m, WithBlockSize(bs))
				if err != nil {
					t.Fatalf("Backward(%q, %q) error = %v", p, c, err)
				}
				if got != want {
					t.Errorf("Backward(%q, %q, block=%d) = %+v, want %+v", p, c, bs, got, want)
				}
			}
		}
	}
}

func TestForwardAndBackward_AgreeOnPresence(t *testing.T) {
	m := matcher.FromRegexp(regexp.MustCompile(`^$`))

	for _, c := range []string{"", "\n", "a\n\nb", "a\nb\n", "a\nb\n\n"} {
		first, err := Forward(strings.NewReader(c), m)
		if err != nil {
			t.Fatal(err)
		}
		r := strings.NewReader(c)
		last, err := Backward(r, r.Size(), m)
		if err != nil {
			t.Fatal(err)
		}
		if first.Found != last.Found {
			t.Errorf("content %q: forward found=%v, backward found=%v", c, first.Found, last.Found)
		}
	}
}

func TestBackward_LongLineAcrossBlocks(t *testing.T) {
	m := matcher.Default()
	long := strings.Repeat("x", 500) + " 2024-05-06 07:08:09,010 " + strings.Repeat("y", 500)
	content := "2024-01-01 00:00:00,000 first\n" + long + "\nno stamp\n"

	r := strings.NewReader(content)
	got, err := Backward(r, r.Size(), m, WithBlockSize(13))
	if err != nil {
		t.Fatalf("Backward() error = %v", err)
	}
	if got != Matched("2024-05-06 07:08:09,010") {
		t.Errorf("Backward() = %+v", got)
	}
}

func TestBackward_HugeSingleLine(t *testing.T) {
	m := matcher.Default()
	// One 8 MiB line with no newline, read in 64 byte blocks. Reassembling
	// the line must stay linear in its length for this to finish quickly.
	content := "2024-05-06 07:08:09,010 " + strings.Repeat("{\"k\":1},", 1<<20)

	r := strings.NewReader(content)
	got, err := Backward(r, r.Size(), m, WithBlockSize(64))
	if err != nil {
		t.Fatalf("Backward() error = %v", err)
	}
	if got != Matched("2024-05-06 07:08:09,010") {
		t.Errorf("Backward() = %+v", got)
	}
}

func TestJoinLine(t *testing.T) {
	tests := []struct {
		name   string
		head   string
		pieces []string
		want   string
	}{
		{"head only", "abc", nil, "abc"},
		{"pieces only", "", []string{"ef", "cd", "ab"}, "abcdef"},
		{"head and pieces", "ab", []string{"ef", "cd"}, "abcdef"},
		{"empty", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pieces [][]byte
			for _, p := range tt.pieces {
				pieces = append(pieces, []byte(p))
			}
			if got := string(joinLine([]byte(tt.head), pieces)); got != tt.want {
				t.Errorf("joinLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

// countingReaderAt records how many bytes were requested.
type countingReaderAt struct {
	r    io.ReaderAt
	read int64
}

func (c *countingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	n, err := c.r.ReadAt(p, off)
	c.read += int64(n)
	return n, err
}

func TestBackward_ReadsOnlyTail(t *testing.T) {
	m := matcher.Default()

	var b bytes.Buffer
	for i := 0; i < 10000; i++ {
		fmt.Fprintf(&b, "2024-01-01 00:00:00,%03d line %d\n", i%1000, i)
	}
	b.WriteString("2024-12-31 23:59:59,999 last\n")
	size := int64(b.Len())

	cr := &countingReaderAt{r: bytes.NewReader(b.Bytes())}
	got, err := Backward(cr, size, m, WithBlockSize(256))
	if err != nil {
		t.Fatalf("Backward() error = %v", err)
	}
	if got != Matched("2024-12-31 23:59:59,999") {
		t.Errorf("Backward() = %+v", got)
	}
	if cr.read > 512 {
		t.Errorf("Backward() read %d of %d bytes, want at most 512", cr.read, size)
	}
}

type failingReaderAt struct{}

func (failingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestBackward_ReadError(t *testing.T) {
	_, err := Backward(failingReaderAt{}, 100, matcher.Default())
	if err == nil {
		t.Fatal("Backward() expected error")
	}
	if !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("Backward() error = %v, want wrapped reader error", err)
	}
}

func TestBackward_ShortReader(t *testing.T) {
	// Size claims more bytes than the reader holds.
	r := strings.NewReader("abc")
	_, err := Backward(r, 10, matcher.Default())
	if err == nil {
		t.Fatal("Backward() expected error for short reader")
	}
}

func TestBackward_Idempotent(t *testing.T) {
	m := matcher.Default()
	content := "2024-01-01 00:00:00,000 a\nb\n2024-01-01 00:00:03,000 c\nd\n"
	r := strings.NewReader(content)

	first, err := Backward(r, r.Size(), m)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Backward(r, r.Size(), m)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Backward() not idempotent: %+v then %+v", first, second)
	}
}

func TestForward_LongLine(t *testing.T) {
	m := matcher.Default()
	content := strings.Repeat("z", 3*DefaultBlockSize) + "\n2024-01-01 00:00:00,000 after\n"

	got, err := Forward(strings.NewReader(content), m)
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	if got != Matched("2024-01-01 00:00:00,000") {
		t.Errorf("Forward() = %+v", got)
	}
}

func TestMatch_String(t *testing.T) {
	if NoMatch.String() != "" {
		t.Errorf("NoMatch.String() = %q", NoMatch.String())
	}
	if Matched("x").String() != "x" {
		t.Errorf("Matched(x).String() = %q", Matched("x").String())
	}
	if Matched("") == NoMatch {
		t.Error("Matched(\"\") must differ from NoMatch")
	}
}

func TestMatch_JSON(t *testing.T) {
	tests := []struct {
		match Match
		want  string
	}{
		{NoMatch, "null"},
		{Matched(""), `""`},
		{Matched("2024-01-01 00:00:00,000"), `"2024-01-01 00:00:00,000"`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.match)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(data) != tt.want {
			t.Errorf("Marshal(%+v) = %s, want %s", tt.match, data, tt.want)
		}

		var back Match
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if back != tt.match {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", data, back, tt.match)
		}
	}
}
