package match_test

import (
	"testing"

	"github.com/shellcon/aquacheck/internal/domain/match"
	"github.com/stretchr/testify/assert"
)

func TestIsLive(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    bool
	}{
		{"plain line", "let c = Client::new();", "Client::new()", true},
		{"only commented", "// let c = Client::new();", "Client::new()", false},
		{"indented comment", "    \t// thread::sleep(d);", "thread::sleep", false},
		{"live and commented", "// thread::sleep(d);\nthread::sleep(d);", "thread::sleep", true},
		{"trailing comment is live", "foo(); // thread::sleep", "thread::sleep", true},
		{"block comment not recognised", "/* thread::sleep */", "thread::sleep", true},
		{"over-match preserved", "let n = CLIENT_COUNT;", "CLIENT", true},
		{"absent", "fn main() {}", "tokio::fs", false},
		{"crlf lines", "// a\r\nb tokio::fs\r\n", "tokio::fs", true},
		{"empty text", "", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, match.IsLive(tt.text, tt.pattern))
		})
	}
}

func TestCountLive(t *testing.T) {
	text := "a.to_string();\n// b.to_string();\nc.to_string(); d.to_string();\n  // e.to_string()\nf.to_string()"
	assert.Equal(t, 3, match.CountLive(text, ".to_string()"))
	assert.Equal(t, 0, match.CountLive("", ".to_string()"))
}

func TestCountLiveWithout(t *testing.T) {
	text := "static C: Lazy<Client> = Lazy::new(|| Client::new());\n" +
		"// let c = Client::new();\n" +
		"let c = Client::new();\n" +
		"C.get_or_init(|| Client::new());"
	assert.Equal(t, 1, match.CountLiveWithout(text, "Client::new()", "Lazy::new", "get_or_init"))
	assert.Equal(t, 3, match.CountLiveWithout(text, "Client::new()"))
}

func TestIsCommented(t *testing.T) {
	assert.True(t, match.IsCommented("// x"))
	assert.True(t, match.IsCommented("   /// doc"))
	assert.False(t, match.IsCommented("x // y"))
	assert.False(t, match.IsCommented(""))
}
