package printer

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/povilasb/wabbit-go/internal/parser"
)

func printSource(t *testing.T, source string) string {
	t.Helper()
	block, err := parser.Parse(source)
	require.NoError(t, err)
	return Print(block)
}

func TestPrintArithmeticExpression(t *testing.T) {
	snaps.MatchSnapshot(t, printSource(t, "print 2 + 3 * -4;"))
}

func TestPrintVarAndConstDecls(t *testing.T) {
	snaps.MatchSnapshot(t, printSource(t, "var x int = 5; const pi = 3.14;"))
}

func TestPrintIfElse(t *testing.T) {
	snaps.MatchSnapshot(t, printSource(t, `
if x < 10 {
    print x;
} else {
    print 0;
}
`))
}

func TestPrintWhileWithBreakContinue(t *testing.T) {
	snaps.MatchSnapshot(t, printSource(t, `
while x < 10 {
    if x == 5 {
        break;
    }
    continue;
}
`))
}

func TestPrintFuncDefAndCall(t *testing.T) {
	snaps.MatchSnapshot(t, printSource(t, `
func add(x int, y int) int {
    return x + y;
}
print add(1, 2);
`))
}

func TestPrintCharLiteral(t *testing.T) {
	snaps.MatchSnapshot(t, printSource(t, `print 'a'; print '\n';`))
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
