package errs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackedFields(t *testing.T) {
	assert.Equal(t, DomainMemory, InvNullPointer.Domain())
	assert.Equal(t, SeverityFatal, InvNullPointer.Severity())
	assert.Equal(t, uint8(0x01), InvNullPointer.Code())

	assert.Equal(t, DomainMemory, ErrOutOfMemory.Domain())
	assert.Equal(t, SeverityFailure, ErrOutOfMemory.Severity())
}

func TestIsError(t *testing.T) {
	assert.False(t, IsError(Success))
	assert.True(t, IsError(ErrOutOfMemory))
}

func TestCheck(t *testing.T) {
	assert.Equal(t, Success, Check(true, ErrOutOfMemory))
	assert.Equal(t, ErrOutOfMemory, Check(false, ErrOutOfMemory))
}

func TestMessageFallback(t *testing.T) {
	unknown := makeError(DomainValue, SeverityWarning, 0x7F)
	assert.Equal(t, "Unknown error", unknown.Message())
}

func TestErrorInterface(t *testing.T) {
	require.Implements(t, (*error)(nil), ErrOutOfMemory)
	assert.Contains(t, ErrOutOfMemory.Error(), "Memory allocation failed")
}

func TestInvariantAborts(t *testing.T) {
	var exitCode int
	old := exitFunc
	exitFunc = func(code int) { exitCode = code }
	defer func() { exitFunc = old }()

	Invariant("ptr != nil", false, InvNullPointer, "ptr=%v", nil)
	assert.Equal(t, 2, exitCode)
}

func TestInvariantWritesLogFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "invariant-*.log")
	require.NoError(t, err)
	f.Close()

	t.Setenv(LogFileEnv, f.Name())

	old := exitFunc
	exitFunc = func(code int) {}
	defer func() { exitFunc = old }()

	Invariant("cap > 0", false, InvZeroSize, "cap=%d", 0)

	contents, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(contents), "INVARIANT VIOLATION")
	assert.Contains(t, string(contents), "cap=0")
}

func TestInvariantPasses(t *testing.T) {
	called := false
	old := exitFunc
	exitFunc = func(code int) { called = true }
	defer func() { exitFunc = old }()

	Invariant("1 == 1", true, InvZeroSize, "")
	assert.False(t, called)
}
