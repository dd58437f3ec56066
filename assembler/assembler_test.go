package assembler_test

import (
	"testing"

	"github.com/0xAbby/ByteCraft/assembler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleEmptyProgram(t *testing.T) {
	m, err := assembler.Assemble("")
	require.NoError(t, err)
	assert.Empty(t, m.Code)
	assert.Empty(t, m.Data)
	assert.Equal(t, uint32(0), m.EntryPoint)
}

func TestAssembleImmediateLoadThenExit(t *testing.T) {
	src := "_main:\n mov r3, 0xDEADBEEF\n mov r1, 0\n syscall\n"
	m, err := assembler.Assemble(src)
	require.NoError(t, err)

	// mov r3, imm32 -> op(1) + mode(1) + reg(1) + imm(4) = 7 bytes
	// mov r1, imm32 -> 7 bytes
	// syscall -> 1 byte (bare)
	assert.Len(t, m.Code, 7+7+1)
}

func TestAssembleLabelJump(t *testing.T) {
	src := "_main:\nstart:\n mov r1, 1\n jmp start\n"
	m, err := assembler.Assemble(src)
	require.NoError(t, err)

	// mov r1,1 (reg dest, imm src) -> 7 bytes, jmp is branch, imm src -> 2 + 4 = 6 bytes
	assert.Len(t, m.Code, 7+6)
	// jmp's target operand (last 4 bytes) resolves to offset 0: "start"
	// labels the beginning of the code region, before the mov.
	assert.Equal(t, []byte{0, 0, 0, 0}, m.Code[len(m.Code)-4:])
}

func TestAssembleDataWriteThenRead(t *testing.T) {
	src := "_main:\n mov [buf], 0x11223344\n mov r2, [buf]\n mov r1, 0\n syscall\n_data:\n DB buf[4]\n"
	m, err := assembler.Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), uint32(len(m.Data)))
}

func TestAssembleDuplicateLabel(t *testing.T) {
	src := "_main:\nL:\n nop\nL:\n nop\n"
	_, err := assembler.Assemble(src)
	require.Error(t, err)
	var aerr *assembler.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, assembler.ErrDuplicateLabel, aerr.Kind)
	assert.Equal(t, 4, aerr.Line)
}

func TestAssembleContentBeforeSection(t *testing.T) {
	_, err := assembler.Assemble("nop\n_main:\n nop\n")
	require.Error(t, err)
	var aerr *assembler.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, assembler.ErrBadSection, aerr.Kind)
	assert.Equal(t, 1, aerr.Line)
}

func TestAssembleUnknownSymbol(t *testing.T) {
	_, err := assembler.Assemble("_main:\n jmp nowhere\n")
	require.Error(t, err)
	var aerr *assembler.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, assembler.ErrUnknownSymbol, aerr.Kind)
}

func TestAssembleBranchRejectsMemoryOperand(t *testing.T) {
	_, err := assembler.Assemble("_main:\n jmp [0x100]\n")
	require.Error(t, err)
	var aerr *assembler.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, assembler.ErrBadOperandShape, aerr.Kind)
}

func TestAssembleMovMemToMemRejected(t *testing.T) {
	_, err := assembler.Assemble("_main:\n mov [0x10], [0x20]\n")
	require.Error(t, err)
	var aerr *assembler.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, assembler.ErrBadOperandShape, aerr.Kind)
}

func TestAssembleCmpRequiresRegisterFirst(t *testing.T) {
	_, err := assembler.Assemble("_main:\n cmp 1, r1\n")
	require.Error(t, err)
	var aerr *assembler.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, assembler.ErrBadOperandShape, aerr.Kind)
}

func TestAssembleCommentsAndCaseInsensitiveMnemonics(t *testing.T) {
	src := "_main: ; entry\n MOV R1, 5 # load 5\n Syscall\n"
	m, err := assembler.Assemble(src)
	require.NoError(t, err)
	assert.Len(t, m.Code, 7+1)
}

func TestAssembleUnknownOpcode(t *testing.T) {
	_, err := assembler.Assemble("_main:\n frobnicate r1\n")
	require.Error(t, err)
	var aerr *assembler.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, assembler.ErrUnknownOpcode, aerr.Kind)
}

func TestAssembleDataSymbolsResolveInDeclarationOrder(t *testing.T) {
	src := "_main:\n nop\n mov r1, b\n_data:\n DB a[4]\n DB b[8]\n"
	m, err := assembler.Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, uint32(12), uint32(len(m.Data)))
	// code_size = 1 (nop) + 7 (mov r1, imm) = 8; a is at 8, so b is at 12.
	assert.Equal(t, []byte{12, 0, 0, 0}, m.Code[len(m.Code)-4:])
}
