package reader

import "testing"

func TestLooksSynthetic(t *testing.T) {
	cases := []struct {
		name    string
		headers []string
		want    bool
	}{
		{"named columns", []string{"First Name", "Last Name", "Address"}, false},
		{"generic columns", []string{"Column_1", "Column_2", "Column_3"}, true},
		{"mixed majority synthetic", []string{"Column1", "Unnamed: 1", "City"}, true},
		{"empty", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := looksSynthetic(tc.headers); got != tc.want {
				t.Errorf("looksSynthetic(%v) = %v, want %v", tc.headers, got, tc.want)
			}
		})
	}
}

func TestLooksLikeData(t *testing.T) {
	cases := []struct {
		name string
		row  []string
		want bool
	}{
		{"names and address", []string{"Smith", "Main Street", "Hollywood", "", ""}, true},
		{"numbers only", []string{"1", "2", "3", "4", "5"}, false},
		{"single word", []string{"John", "", "", "", ""}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := looksLikeData(tc.row); got != tc.want {
				t.Errorf("looksLikeData(%v) = %v, want %v", tc.row, got, tc.want)
			}
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	cases := []struct {
		name string
		text string
		want rune
	}{
		{"comma", "a,b,c\n1,2,3", ','},
		{"semicolon", "a;b;c\n1;2;3", ';'},
		{"tab", "a\tb\tc\n1\t2\t3", '\t'},
		{"pipe", "a|b|c\n1|2|3", '|'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectDelimiter(tc.text); got != tc.want {
				t.Errorf("detectDelimiter(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestDecodeLadderUTF8(t *testing.T) {
	s, enc, err := decodeLadder([]byte("hello, world"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("encoding = %q, want utf-8", enc)
	}
	if s != "hello, world" {
		t.Errorf("decoded = %q", s)
	}
}

func TestDecodeLadderWindows1252(t *testing.T) {
	// 0x93/0x94 are curly quotes in windows-1252, invalid as standalone UTF-8 bytes.
	raw := []byte{0x93, 'h', 'i', 0x94}
	s, enc, err := decodeLadder(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc != "windows-1252" {
		t.Errorf("encoding = %q, want windows-1252", enc)
	}
	if s == "" {
		t.Error("expected non-empty decode")
	}
}

func TestRawRowGet(t *testing.T) {
	row := RawRow{{Column: "Name", Value: "Alice"}, {Column: "City", Value: "Miami"}}
	if got := row.Get("City"); got != "Miami" {
		t.Errorf("Get(City) = %q, want Miami", got)
	}
	if got := row.Get("Missing"); got != "" {
		t.Errorf("Get(Missing) = %q, want empty", got)
	}
}
