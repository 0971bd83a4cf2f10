package salt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitCodeHashParsing(t *testing.T) {
	hash := "0x" + strings.Repeat("ab", 32)

	// the sepolia script logs a chain-prefixed variable name
	out := "== Logs ==\n  SEPOLIA_INIT_CODE_HASH=" + hash + "\n"
	m := initCodeHashRe.FindStringSubmatch(out)
	assert.NotNil(t, m)
	assert.Equal(t, hash, m[1])

	assert.Nil(t, initCodeHashRe.FindStringSubmatch("== Logs ==\nnothing here\n"))
}

func TestSaltLineParsing(t *testing.T) {
	line := "0x" + strings.Repeat("5a", 32)
	m := saltLineRe.FindStringSubmatch(strings.TrimSpace(line + "\n"))
	assert.NotNil(t, m)

	assert.Nil(t, saltLineRe.FindStringSubmatch("found salt "+line))
}
