package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecover_WithPanic tests the Recover function when a panic occurs
func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "handlePredict")
		panic("test panic message")
	}

	err := testFunc()
	require.Error(t, err)

	var panicErr *PanicError
	require.True(t, errors.As(err, &panicErr), "expected PanicError, got %T", err)
	assert.Equal(t, "handlePredict", panicErr.Operation)
	assert.Equal(t, "test panic message", panicErr.PanicValue)
	assert.NotEmpty(t, panicErr.StackTrace)
	assert.Equal(t, "panic in handlePredict: test panic message", panicErr.Error())
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "handlePredict")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

// TestRecover_WithExistingError tests Recover when function has existing error and panic occurs
func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "Train")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in Train")
	assert.Contains(t, err.Error(), "original error")
	assert.True(t, errors.Is(err, originalErr))
}

func TestSafeExecute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, SafeExecute("op", func() error { return nil }))
	})

	t.Run("function error", func(t *testing.T) {
		originalErr := fmt.Errorf("function error")
		err := SafeExecute("op", func() error { return originalErr })
		assert.Same(t, originalErr, err)
	})

	t.Run("panic", func(t *testing.T) {
		err := SafeExecute("op", func() error {
			panic("test panic in safe execute")
		})
		var panicErr *PanicError
		require.True(t, errors.As(err, &panicErr))
		assert.Equal(t, "test panic in safe execute", panicErr.PanicValue)
	})
}

func TestPanicError_Unwrap(t *testing.T) {
	plain := NewPanicError("TestOp", "test value")
	assert.Nil(t, plain.Unwrap())
	assert.True(t, strings.Contains(plain.String(), "Stack trace:"))

	cause := fmt.Errorf("index out of range")
	wrapped := NewPanicError("TestOp", cause)
	assert.True(t, errors.Is(wrapped, cause))
}

// TestRecover_DifferentPanicTypes tests Recover with different types of panic values
func TestRecover_DifferentPanicTypes(t *testing.T) {
	testCases := []struct {
		name          string
		panicValue    interface{}
		expectedValue string
	}{
		{"string panic", "string panic", "string panic"},
		{"int panic", 42, "42"},
		{"error panic", fmt.Errorf("error as panic"), "error as panic"},
		{"struct panic", struct{ Msg string }{"struct message"}, "{struct message}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testFunc := func() (err error) {
				defer Recover(&err, "TypeTest")
				panic(tc.panicValue)
			}

			err := testFunc()
			var panicErr *PanicError
			require.True(t, errors.As(err, &panicErr))
			assert.Equal(t, tc.expectedValue, fmt.Sprintf("%v", panicErr.PanicValue))
		})
	}
}

func BenchmarkSafeExecute_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = SafeExecute("BenchmarkOp", func() error {
			return nil
		})
	}
}
