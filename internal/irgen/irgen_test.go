package irgen

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/povilasb/wabbit-go/internal/parser"
)

func emit(t *testing.T, source string) string {
	t.Helper()
	block, err := parser.Parse(source)
	require.NoError(t, err)
	ir, err := Emit(block)
	require.NoError(t, err)
	return ir
}

func TestEmitArithmeticPrint(t *testing.T) {
	snaps.MatchSnapshot(t, emit(t, "print 2 + 3 * 4;"))
}

func TestEmitIfElse(t *testing.T) {
	snaps.MatchSnapshot(t, emit(t, `
var x int = 5;
if x < 10 {
    print 1;
} else {
    print 0;
}
`))
}

func TestEmitWhileWithBreakAndContinue(t *testing.T) {
	snaps.MatchSnapshot(t, emit(t, `
var i int = 0;
while i < 10 {
    i = i + 1;
    if i == 3 {
        continue;
    }
    if i == 8 {
        break;
    }
    print i;
}
`))
}

func TestEmitFuncDefAndCall(t *testing.T) {
	snaps.MatchSnapshot(t, emit(t, `
func add(x int, y int) int {
    return x + y;
}
print add(2, 3);
`))
}

func TestEmitBreakOutsideLoopIsError(t *testing.T) {
	block, err := parser.Parse("break;")
	require.NoError(t, err)
	_, err = Emit(block)
	require.Error(t, err)
}

func TestEmitDeclaresPrintRuntimeExterns(t *testing.T) {
	ir := emit(t, "print 1;")
	assert.Contains(t, ir, "declare void @__wabbit_print_int(i32)")
	assert.Contains(t, ir, "call void @__wabbit_print_int(i32 1)")
}

func TestEmitConstDeclGetsStorageSlot(t *testing.T) {
	ir := emit(t, "const pi = 3.14; print pi;")
	assert.Contains(t, ir, "%pi = alloca double")
	assert.Contains(t, ir, "store double 3.14, double* %pi")
	assert.Contains(t, ir, "load double, double* %pi")
}
