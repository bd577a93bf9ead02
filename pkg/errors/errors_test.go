package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorFormat(t *testing.T) {
	e := New(CodeMissingColumn, "column not found")
	assert.Equal(t, "[DATA_002] column not found", e.Error())

	withDetail := e.WithDetail("column=SMILES")
	assert.Equal(t, "[DATA_002] column not found: column=SMILES", withDetail.Error())
	// WithDetail returns a copy.
	assert.Empty(t, e.Detail)
}

func TestWrap_PreservesChain(t *testing.T) {
	root := stderrors.New("disk on fire")
	wrapped := Wrap(root, CodeFileFormat, "failed to read table")

	assert.True(t, stderrors.Is(wrapped, root))
	assert.Equal(t, CodeFileFormat, GetCode(wrapped))
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeFileFormat, "whatever"))
	assert.Nil(t, WrapMsg(nil, "whatever"))
}

func TestWrap_UnknownCodeInheritsInner(t *testing.T) {
	inner := New(CodeInvalidSMILES, "bad ring bond")
	outer := Wrap(inner, CodeUnknown, "parse failed")
	assert.Equal(t, CodeInvalidSMILES, outer.Code)
}

func TestWrapMsg_PreservesInnerCode(t *testing.T) {
	inner := New(CodeUnfitTransformer, "fit before transform")
	outer := WrapMsg(inner, "circus transform failed")

	assert.Equal(t, CodeUnfitTransformer, outer.Code)
	assert.True(t, IsCode(outer, CodeUnfitTransformer))
}

func TestWrapMsg_PlainErrorBecomesInternal(t *testing.T) {
	outer := WrapMsg(stderrors.New("oops"), "context")
	assert.Equal(t, CodeInternal, outer.Code)
}

func TestIsCode_TraversesChain(t *testing.T) {
	inner := MissingColumn("SMILES")
	mid := WrapMsg(inner, "extract failed")
	outer := fmt.Errorf("pipeline: %w", mid)

	assert.True(t, IsCode(outer, CodeMissingColumn))
	assert.False(t, IsCode(outer, CodeShapeMismatch))
	assert.False(t, IsCode(nil, CodeMissingColumn))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, CodeInvalidConfig, GetCode(InvalidConfig("bad spec")))
}

func TestFactories(t *testing.T) {
	assert.Equal(t, CodeInvalidParam, InvalidParam("x").Code)
	assert.Equal(t, CodeInternal, Internal("x").Code)
	assert.Equal(t, CodeNotImplemented, NotImplemented("x").Code)

	mc := MissingColumn("solvent")
	require.Contains(t, mc.Message, "solvent")
}

func TestNew_CapturesStack(t *testing.T) {
	e := New(CodeInternal, "boom")
	assert.NotEmpty(t, e.Stack)
	assert.Contains(t, e.Stack, "errors_test.go")
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "DATA", ModuleForCode(ErrCodeMissingColumn))
	assert.Equal(t, "DESC", ModuleForCode(ErrCodeInvalidSMILES))
	assert.Equal(t, "MDL", ModuleForCode(ErrCodeModelInvalid))
	assert.Equal(t, "ANL", ModuleForCode(ErrCodePlotFailed))
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "invalid SMILES format", DefaultMessageForCode(ErrCodeInvalidSMILES))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("NOPE_999")))
}
